package domain

type VentureStage string

const (
	StageIntake          VentureStage = "INTAKE"
	StageScreening       VentureStage = "SCREENING"
	StageDueDiligence    VentureStage = "DUE_DILIGENCE"
	StageInvestmentReady VentureStage = "INVESTMENT_READY"
	StageFunded          VentureStage = "FUNDED"
	StageExited          VentureStage = "EXITED"
)

// ValidVentureStages is the canonical set of accepted stage strings.
var ValidVentureStages = map[VentureStage]bool{
	StageIntake: true, StageScreening: true, StageDueDiligence: true,
	StageInvestmentReady: true, StageFunded: true, StageExited: true,
}

type VentureStatus string

const (
	VentureActive   VentureStatus = "ACTIVE"
	VentureInactive VentureStatus = "INACTIVE"
	VentureArchived VentureStatus = "ARCHIVED"
)

// ValidVentureStatuses is the canonical set of accepted status strings.
var ValidVentureStatuses = map[VentureStatus]bool{
	VentureActive: true, VentureInactive: true, VentureArchived: true,
}

type MetricCategory string

const (
	CategoryGender          MetricCategory = "GENDER"
	CategoryDisability      MetricCategory = "DISABILITY"
	CategorySocialInclusion MetricCategory = "SOCIAL_INCLUSION"
	CategoryCrossCutting    MetricCategory = "CROSS_CUTTING"
)

// ValidMetricCategories is the canonical set of accepted category strings.
var ValidMetricCategories = map[MetricCategory]bool{
	CategoryGender: true, CategoryDisability: true,
	CategorySocialInclusion: true, CategoryCrossCutting: true,
}

type MetricStatus string

const (
	MetricNotStarted MetricStatus = "NOT_STARTED"
	MetricInProgress MetricStatus = "IN_PROGRESS"
	MetricVerified   MetricStatus = "VERIFIED"
	MetricCompleted  MetricStatus = "COMPLETED"
)

// ValidMetricStatuses is the canonical set of accepted metric status strings.
var ValidMetricStatuses = map[MetricStatus]bool{
	MetricNotStarted: true, MetricInProgress: true,
	MetricVerified: true, MetricCompleted: true,
}

type ActivityType string

const (
	ActivityVentureCreated       ActivityType = "VENTURE_CREATED"
	ActivityVentureUpdated       ActivityType = "VENTURE_UPDATED"
	ActivityVentureDeleted       ActivityType = "VENTURE_DELETED"
	ActivityMetricAdded          ActivityType = "METRIC_ADDED"
	ActivityMetricUpdated        ActivityType = "METRIC_UPDATED"
	ActivityDocumentUploaded     ActivityType = "DOCUMENT_UPLOADED"
	ActivityCapitalActivityAdded ActivityType = "CAPITAL_ACTIVITY_ADDED"
	ActivityNote                 ActivityType = "NOTE"
)
