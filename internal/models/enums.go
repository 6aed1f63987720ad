package models

// EventType classifies an event.
type EventType string

const (
	EventTypeSports        EventType = "sports"
	EventTypeCultural      EventType = "cultural"
	EventTypeEnvironmental EventType = "environmental"
	EventTypeSocial        EventType = "social"
	EventTypeEducational   EventType = "educational"
	EventTypeRecreational  EventType = "recreational"
	EventTypeHealth        EventType = "health"
	EventTypeOther         EventType = "other"
)

// EventTypes lists every event type in display order.
var EventTypes = []EventType{
	EventTypeSports, EventTypeCultural, EventTypeEnvironmental, EventTypeSocial,
	EventTypeEducational, EventTypeRecreational, EventTypeHealth, EventTypeOther,
}

// TargetAudience is the intended public of an event.
type TargetAudience string

const (
	AudienceAll      TargetAudience = "all"
	AudienceChildren TargetAudience = "children"
	AudienceYouth    TargetAudience = "youth"
	AudienceAdults   TargetAudience = "adults"
	AudienceSeniors  TargetAudience = "seniors"
	AudienceFamilies TargetAudience = "families"
)

var TargetAudiences = []TargetAudience{
	AudienceAll, AudienceChildren, AudienceYouth, AudienceAdults, AudienceSeniors, AudienceFamilies,
}

// EventStatus is the publication state of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusPostponed EventStatus = "postponed"
	EventStatusCompleted EventStatus = "completed"
)

var EventStatuses = []EventStatus{
	EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusPostponed, EventStatusCompleted,
}

// RegistrationType tells whether attendees must register.
type RegistrationType string

const (
	RegistrationFree     RegistrationType = "free"
	RegistrationRequired RegistrationType = "registration"
)

var RegistrationTypes = []RegistrationType{RegistrationFree, RegistrationRequired}

// RegistrationStatus is the state of a participant registration.
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusConfirmed  RegistrationStatus = "confirmed"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
	RegistrationStatusAttended   RegistrationStatus = "attended"
	RegistrationStatusNoShow     RegistrationStatus = "no-show"
)

var RegistrationStatuses = []RegistrationStatus{
	RegistrationStatusRegistered, RegistrationStatusConfirmed, RegistrationStatusCancelled,
	RegistrationStatusAttended, RegistrationStatusNoShow,
}

// ResourceType is the kind of an allocated resource.
type ResourceType string

const (
	ResourceTypeSpace     ResourceType = "space"
	ResourceTypeEquipment ResourceType = "equipment"
	ResourceTypeService   ResourceType = "service"
)

var ResourceTypes = []ResourceType{ResourceTypeSpace, ResourceTypeEquipment, ResourceTypeService}

// ResourceStatus is the state of a resource allocation.
type ResourceStatus string

const (
	ResourceStatusPending   ResourceStatus = "pending"
	ResourceStatusConfirmed ResourceStatus = "confirmed"
	ResourceStatusRejected  ResourceStatus = "rejected"
)

var ResourceStatuses = []ResourceStatus{ResourceStatusPending, ResourceStatusConfirmed, ResourceStatusRejected}

// StaffStatus is the state of a staff or volunteer assignment.
type StaffStatus string

const (
	StaffStatusAssigned  StaffStatus = "assigned"
	StaffStatusConfirmed StaffStatus = "confirmed"
	StaffStatusCancelled StaffStatus = "cancelled"
)

var StaffStatuses = []StaffStatus{StaffStatusAssigned, StaffStatusConfirmed, StaffStatusCancelled}

// RespondentType identifies who filled an evaluation.
type RespondentType string

const (
	RespondentParticipant RespondentType = "participant"
	RespondentStaff       RespondentType = "staff"
	RespondentVolunteer   RespondentType = "volunteer"
	RespondentOrganizer   RespondentType = "organizer"
	RespondentOther       RespondentType = "other"
)

var RespondentTypes = []RespondentType{
	RespondentParticipant, RespondentStaff, RespondentVolunteer, RespondentOrganizer, RespondentOther,
}

func (t EventType) Valid() bool          { return contains(EventTypes, t) }
func (a TargetAudience) Valid() bool     { return contains(TargetAudiences, a) }
func (s EventStatus) Valid() bool        { return contains(EventStatuses, s) }
func (r RegistrationType) Valid() bool   { return contains(RegistrationTypes, r) }
func (s RegistrationStatus) Valid() bool { return contains(RegistrationStatuses, s) }
func (t ResourceType) Valid() bool       { return contains(ResourceTypes, t) }
func (s ResourceStatus) Valid() bool     { return contains(ResourceStatuses, s) }
func (s StaffStatus) Valid() bool        { return contains(StaffStatuses, s) }
func (t RespondentType) Valid() bool     { return contains(RespondentTypes, t) }

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Values converts a typed enum list to the []interface{} form used by validation.In.
func Values[T ~string](list []T) []interface{} {
	out := make([]interface{}, len(list))
	for i, v := range list {
		out[i] = v
	}
	return out
}
