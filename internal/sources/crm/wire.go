package crm

import (
	"github.com/campusmedia/capsync/pkg/capture"
)

// Wire representations of the CRM objects. Field names follow the CRM's
// custom-object schema; conversion to and from the domain types happens
// only here, at the boundary.

type courseObject struct {
	ID           string `json:"Id,omitempty"`
	SectionID    string `json:"Section_ID__c"`
	Name         string `json:"Name"`
	Instructor1  string `json:"Instructor_1__c,omitempty"`
	Instructor2  string `json:"Instructor_2__c,omitempty"`
	Instructor3  string `json:"Instructor_3__c,omitempty"`
	Instructor4  string `json:"Instructor_4__c,omitempty"`
	Instructor5  string `json:"Instructor_5__c,omitempty"`
	Instructor6  string `json:"Instructor_6__c,omitempty"`
	Room         string `json:"Room__c,omitempty"`
	ScheduleDays string `json:"Schedule_Days__c,omitempty"`
	StartTime    string `json:"Start_Time__c,omitempty"`
	EndTime      string `json:"End_Time__c,omitempty"`
	StageName    string `json:"StageName,omitempty"`
}

type contactObject struct {
	ID         string `json:"Id,omitempty"`
	UID        string `json:"Campus_UID__c"`
	Email      string `json:"Email,omitempty"`
	FirstName  string `json:"FirstName,omitempty"`
	LastName   string `json:"LastName,omitempty"`
	Department string `json:"Department,omitempty"`
	Role       string `json:"Role__c,omitempty"`
}

type locationObject struct {
	ID             string `json:"Id"`
	Building       string `json:"Building__c"`
	RoomNumber     string `json:"Room_Number__c"`
	CaptureCapable bool   `json:"Capture_Capable__c"`
}

type recordList[T any] struct {
	Records []T `json:"records"`
}

type upsertResponse struct {
	Results []upsertResultObject `json:"results"`
}

type upsertResultObject struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

func toCourseObject(rec capture.CourseRecord) courseObject {
	return courseObject{
		ID:           rec.ID,
		SectionID:    rec.SectionID,
		Name:         rec.Title,
		Instructor1:  rec.InstructorIDs[0],
		Instructor2:  rec.InstructorIDs[1],
		Instructor3:  rec.InstructorIDs[2],
		Instructor4:  rec.InstructorIDs[3],
		Instructor5:  rec.InstructorIDs[4],
		Instructor6:  rec.InstructorIDs[5],
		Room:         rec.RoomID,
		ScheduleDays: rec.ScheduleDays,
		StartTime:    rec.StartTime,
		EndTime:      rec.EndTime,
		StageName:    rec.Stage,
	}
}

func fromCourseObject(obj courseObject) capture.CourseRecord {
	return capture.CourseRecord{
		ID:        obj.ID,
		SectionID: obj.SectionID,
		Title:     obj.Name,
		InstructorIDs: [capture.MaxInstructorSlots]string{
			obj.Instructor1,
			obj.Instructor2,
			obj.Instructor3,
			obj.Instructor4,
			obj.Instructor5,
			obj.Instructor6,
		},
		RoomID:       obj.Room,
		ScheduleDays: obj.ScheduleDays,
		StartTime:    obj.StartTime,
		EndTime:      obj.EndTime,
		Stage:        obj.StageName,
	}
}

func toContactObject(rec capture.ContactRecord) contactObject {
	return contactObject{
		ID:         rec.ID,
		UID:        rec.UID,
		Email:      rec.Email,
		FirstName:  rec.FirstName,
		LastName:   rec.LastName,
		Department: rec.Department,
		Role:       rec.Role,
	}
}

func fromContactObject(obj contactObject) capture.ContactRecord {
	return capture.ContactRecord{
		ID:         obj.ID,
		UID:        obj.UID,
		Email:      obj.Email,
		FirstName:  obj.FirstName,
		LastName:   obj.LastName,
		Department: obj.Department,
		Role:       obj.Role,
	}
}

func fromLocationObject(obj locationObject) capture.Location {
	return capture.Location{
		ID:             obj.ID,
		Building:       obj.Building,
		RoomNumber:     obj.RoomNumber,
		CaptureCapable: obj.CaptureCapable,
	}
}
