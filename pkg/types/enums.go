package types

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type TaskTag string

const (
	TaskTagWork     TaskTag = "work"
	TaskTagPersonal TaskTag = "personal"
	TaskTagHealth   TaskTag = "health"
	TaskTagOther    TaskTag = "other"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

type ActivityType string

const (
	ActivityTypeRun   ActivityType = "run"
	ActivityTypeWalk  ActivityType = "walk"
	ActivityTypeCycle ActivityType = "cycle"
	ActivityTypeGym   ActivityType = "gym"
	ActivityTypeSwim  ActivityType = "swim"
	ActivityTypeYoga  ActivityType = "yoga"
	ActivityTypeOther ActivityType = "other"
)

type InsightCategory string

const (
	InsightCategoryMovement InsightCategory = "movement"
	InsightCategoryDiet     InsightCategory = "diet"
	InsightCategorySleep    InsightCategory = "sleep"
	InsightCategoryOutdoor  InsightCategory = "outdoor"
	InsightCategoryGeneral  InsightCategory = "general"
)

// Vital types recorded by the apps.
const (
	VitalHeartRate     = "heart_rate"
	VitalBloodGlucose  = "blood_glucose"
	VitalWeight        = "weight"
	VitalSleepDuration = "sleep_duration"
)

// Defaults applied to new users' goals.
const (
	DefaultDailyStepGoal    = 10000
	DefaultDailyCalorieGoal = 2000
	DefaultDailyProteinGoal = 50
	DefaultDailyCarbsGoal   = 250
	DefaultDailyFatGoal     = 70
	DefaultSleepHoursGoal   = 8
)
