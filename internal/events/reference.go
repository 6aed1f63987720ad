package events

import "github.com/parkops/events-backend/internal/models"

// Option is a selectable enum value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ReferenceData lists the enumerations used by event forms.
type ReferenceData struct {
	EventTypes        []Option `json:"eventTypes"`
	TargetAudiences   []Option `json:"targetAudiences"`
	EventStatuses     []Option `json:"eventStatuses"`
	RegistrationTypes []Option `json:"registrationTypes"`
}

var eventTypeLabels = map[models.EventType]string{
	models.EventTypeSports:        "Deportivo",
	models.EventTypeCultural:      "Cultural",
	models.EventTypeEnvironmental: "Ambiental",
	models.EventTypeSocial:        "Social",
	models.EventTypeEducational:   "Educativo",
	models.EventTypeRecreational:  "Recreativo",
	models.EventTypeHealth:        "Salud",
	models.EventTypeOther:         "Otro",
}

var audienceLabels = map[models.TargetAudience]string{
	models.AudienceAll:      "Todo público",
	models.AudienceChildren: "Niños",
	models.AudienceYouth:    "Jóvenes",
	models.AudienceAdults:   "Adultos",
	models.AudienceSeniors:  "Adultos mayores",
	models.AudienceFamilies: "Familias",
}

var statusLabels = map[models.EventStatus]string{
	models.EventStatusDraft:     "Borrador",
	models.EventStatusPublished: "Publicado",
	models.EventStatusCancelled: "Cancelado",
	models.EventStatusPostponed: "Pospuesto",
	models.EventStatusCompleted: "Completado",
}

var registrationTypeLabels = map[models.RegistrationType]string{
	models.RegistrationFree:     "Entrada libre",
	models.RegistrationRequired: "Requiere inscripción",
}

// Reference returns the static event enumerations in display order.
func Reference() ReferenceData {
	return ReferenceData{
		EventTypes:        options(models.EventTypes, eventTypeLabels),
		TargetAudiences:   options(models.TargetAudiences, audienceLabels),
		EventStatuses:     options(models.EventStatuses, statusLabels),
		RegistrationTypes: options(models.RegistrationTypes, registrationTypeLabels),
	}
}

func options[T ~string](values []T, labels map[T]string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: string(v), Label: labels[v]})
	}
	return out
}
