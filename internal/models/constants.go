package models

// SkillCategory категория навыка, по которой работники сопоставляются с вакансиями.
type SkillCategory string

const (
	SkillWelder       SkillCategory = "welder"
	SkillElectrician  SkillCategory = "electrician"
	SkillPlumber      SkillCategory = "plumber"
	SkillCarpenter    SkillCategory = "carpenter"
	SkillMason        SkillCategory = "mason"
	SkillPainter      SkillCategory = "painter"
	SkillDriverCar    SkillCategory = "driver-car"
	SkillDriverTruck  SkillCategory = "driver-truck"
	SkillMechanic     SkillCategory = "mechanic"
	SkillACTechnician SkillCategory = "ac-technician"
	SkillCleaner      SkillCategory = "cleaner"
	SkillGardener     SkillCategory = "gardener"
	SkillCook         SkillCategory = "cook"
	SkillSecurity     SkillCategory = "security"
	SkillTailor       SkillCategory = "tailor"
)

// DurationType тип оплаты/длительности вакансии.
type DurationType string

const (
	DurationDaily   DurationType = "daily"
	DurationWeekly  DurationType = "weekly"
	DurationMonthly DurationType = "monthly"
	DurationProject DurationType = "project"
)

// JobStatus статус вакансии.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusFilled JobStatus = "filled"
)

// Role роль пользователя в сессии.
type Role string

const (
	RoleWorker   Role = "worker"
	RoleEmployer Role = "employer"
)

// MediaType тип медиа в портфолио.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// ValidSkillCategories список валидных категорий навыков
var ValidSkillCategories = map[SkillCategory]struct{}{
	SkillWelder:       {},
	SkillElectrician:  {},
	SkillPlumber:      {},
	SkillCarpenter:    {},
	SkillMason:        {},
	SkillPainter:      {},
	SkillDriverCar:    {},
	SkillDriverTruck:  {},
	SkillMechanic:     {},
	SkillACTechnician: {},
	SkillCleaner:      {},
	SkillGardener:     {},
	SkillCook:         {},
	SkillSecurity:     {},
	SkillTailor:       {},
}

// ValidDurationTypes список валидных типов длительности
var ValidDurationTypes = map[DurationType]struct{}{
	DurationDaily:   {},
	DurationWeekly:  {},
	DurationMonthly: {},
	DurationProject: {},
}

// ValidJobStatuses список валидных статусов вакансий
var ValidJobStatuses = map[JobStatus]struct{}{
	JobStatusOpen:   {},
	JobStatusClosed: {},
	JobStatusFilled: {},
}

// ValidRoles список валидных ролей
var ValidRoles = map[Role]struct{}{
	RoleWorker:   {},
	RoleEmployer: {},
}

func (s SkillCategory) IsValid() bool {
	_, ok := ValidSkillCategories[s]
	return ok
}

func (d DurationType) IsValid() bool {
	_, ok := ValidDurationTypes[d]
	return ok
}

func (s JobStatus) IsValid() bool {
	_, ok := ValidJobStatuses[s]
	return ok
}

// Переходы статусов вакансии: закрыть или заполнить можно только открытую.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:   {JobStatusClosed, JobStatusFilled},
	JobStatusClosed: {},
	JobStatusFilled: {},
}

// CanTransitionTo сообщает, можно ли перевести вакансию в статус next.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, status := range jobTransitions[s] {
		if status == next {
			return true
		}
	}
	return false
}

func (r Role) IsValid() bool {
	_, ok := ValidRoles[r]
	return ok
}
