package models

// EntityKind tags the three voteable/reportable subjects. Votes and reports
// reference entities polymorphically through (entity_kind, entity_id), so
// one engine serves cars, build lists and parts.
type EntityKind string

const (
	EntityKindCar       EntityKind = "car"
	EntityKindBuildList EntityKind = "build_list"
	EntityKindPart      EntityKind = "part"
)

func (k EntityKind) Valid() bool {
	switch k {
	case EntityKindCar, EntityKindBuildList, EntityKindPart:
		return true
	}
	return false
}
