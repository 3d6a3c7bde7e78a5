package breach

import (
	"errors"
	"fmt"

	"databreach-registry/internal/domain/entity"
)

const requiredMessage = "This field is required."

// EntityDocument is the nested entity of a breach document.
type EntityDocument struct {
	Name             string   `json:"name" yaml:"name"`
	OrganizationType []string `json:"organization_type" yaml:"organization_type"`
}

// Document is the nested representation of a breach returned to callers.
type Document struct {
	ID      int64          `json:"id" yaml:"id"`
	Entity  EntityDocument `json:"entity" yaml:"entity"`
	Year    int            `json:"year" yaml:"year"`
	Records int64          `json:"records" yaml:"records"`
	Method  string         `json:"method" yaml:"method"`
	Sources []string       `json:"sources" yaml:"sources"`
}

// EntityRequest is the entity part of a create or update request.
type EntityRequest struct {
	Name             *string  `json:"name" yaml:"name"`
	OrganizationType []string `json:"organization_type" yaml:"organization_type"`
}

// Request is an incoming breach document. Nil fields were absent from the input;
// on update they leave the stored value untouched.
type Request struct {
	Entity  *EntityRequest `json:"entity" yaml:"entity"`
	Year    *int           `json:"year" yaml:"year"`
	Records *int64         `json:"records" yaml:"records"`
	Method  *string        `json:"method" yaml:"method"`
	Sources *[]string      `json:"sources" yaml:"sources"`
}

// EntityPlan names the entity to resolve and the tags it should carry.
type EntityPlan struct {
	Name string
	Tags []string
}

// Plan is a validated Request. Pointer fields are nil when the request left them out.
type Plan struct {
	Entity  *EntityPlan
	Year    *int
	Records *int64
	Method  *string
	Sources *[]string
}

// FromWire validates req and turns it into a Plan. With partial set, absent fields are
// allowed (update); otherwise every field must be present (create). All problems are
// reported together as entity.ValidationErrors keyed by field path.
func FromWire(req Request, partial bool) (Plan, error) {
	errs := entity.ValidationErrors{}
	var plan Plan

	switch {
	case req.Entity != nil:
		plan.Entity = planEntity(req.Entity, errs)
	case !partial:
		errs.Add("entity", requiredMessage)
	}

	if req.Year != nil {
		errs.Merge(entity.ValidateYear(*req.Year))
		plan.Year = req.Year
	} else if !partial {
		errs.Add("year", requiredMessage)
	}

	if req.Records != nil {
		errs.Merge(entity.ValidateRecords(*req.Records))
		plan.Records = req.Records
	} else if !partial {
		errs.Add("records", requiredMessage)
	}

	if req.Method != nil {
		errs.Merge(entity.ValidateMethod(*req.Method))
		plan.Method = req.Method
	} else if !partial {
		errs.Add("method", requiredMessage)
	}

	if req.Sources != nil {
		urls := make([]string, 0, len(*req.Sources))
		for i, u := range *req.Sources {
			if err := entity.ValidateURL(u); err != nil {
				errs.Add(fmt.Sprintf("sources[%d]", i), messageOf(err))
				continue
			}
			urls = append(urls, u)
		}
		plan.Sources = &urls
	} else if !partial {
		errs.Add("sources", requiredMessage)
	}

	if err := errs.OrNil(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func planEntity(req *EntityRequest, errs entity.ValidationErrors) *EntityPlan {
	p := &EntityPlan{Tags: make([]string, 0, len(req.OrganizationType))}
	if req.Name == nil {
		errs.Add("entity.name", requiredMessage)
	} else {
		errs.MergePrefixed("entity", entity.ValidateEntityName(*req.Name))
		p.Name = *req.Name
	}
	for i, tag := range req.OrganizationType {
		if err := entity.ValidateOrganizationType(tag); err != nil {
			errs.Add(fmt.Sprintf("entity.organization_type[%d]", i), messageOf(err))
			continue
		}
		p.Tags = append(p.Tags, tag)
	}
	return p
}

// messageOf drops the field name from a single-field validation error; the caller
// files the message under its own path.
func messageOf(err error) string {
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

// ToWire renders an aggregate. Tag and source lists are never nil.
func ToWire(a *entity.Aggregate) Document {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	sources := a.Sources
	if sources == nil {
		sources = []string{}
	}
	return Document{
		ID: a.Breach.ID,
		Entity: EntityDocument{
			Name:             a.Entity.Name,
			OrganizationType: tags,
		},
		Year:    a.Breach.Year,
		Records: a.Breach.Records,
		Method:  a.Breach.Method,
		Sources: sources,
	}
}
