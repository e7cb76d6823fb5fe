package types

// Request payloads. Create payloads carry validation tags checked with
// go-playground/validator; update payloads only send the fields that are set.

type UserCreate struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type TaskCreate struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	Status      TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	Tag         TaskTag    `json:"tag,omitempty" validate:"omitempty,oneof=work personal health other"`
	DueDatetime *Timestamp `json:"due_datetime,omitempty"`
}

type TaskUpdate struct {
	Title       *string     `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	Tag         *TaskTag    `json:"tag,omitempty" validate:"omitempty,oneof=work personal health other"`
	DueDatetime *Timestamp  `json:"due_datetime,omitempty"`
}

type EventCreate struct {
	Title         string    `json:"title" validate:"required"`
	Description   *string   `json:"description,omitempty"`
	StartDatetime Timestamp `json:"start_datetime" validate:"required"`
	EndDatetime   Timestamp `json:"end_datetime" validate:"required"`
	Location      *string   `json:"location,omitempty"`
}

type EventUpdate struct {
	Title         *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Description   *string    `json:"description,omitempty"`
	StartDatetime *Timestamp `json:"start_datetime,omitempty"`
	EndDatetime   *Timestamp `json:"end_datetime,omitempty"`
	Location      *string    `json:"location,omitempty"`
}

// MealCreate either names a food to look up (FoodName, Quantity) or carries
// the nutrition values directly.
type MealCreate struct {
	Name     string    `json:"name" validate:"required"`
	MealType MealType  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	Datetime Timestamp `json:"datetime" validate:"required"`
	FoodName *string   `json:"food_name,omitempty"`
	Quantity *string   `json:"quantity,omitempty"`
	Calories *float64  `json:"calories,omitempty" validate:"omitempty,gte=0"`
	Carbs    *float64  `json:"carbs,omitempty" validate:"omitempty,gte=0"`
	Protein  *float64  `json:"protein,omitempty" validate:"omitempty,gte=0"`
	Fat      *float64  `json:"fat,omitempty" validate:"omitempty,gte=0"`
}

type MealUpdate struct {
	Name     *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	MealType *MealType  `json:"meal_type,omitempty" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Datetime *Timestamp `json:"datetime,omitempty"`
	Calories *float64   `json:"calories,omitempty" validate:"omitempty,gte=0"`
	Carbs    *float64   `json:"carbs,omitempty" validate:"omitempty,gte=0"`
	Protein  *float64   `json:"protein,omitempty" validate:"omitempty,gte=0"`
	Fat      *float64   `json:"fat,omitempty" validate:"omitempty,gte=0"`
}

type StepSummaryCreate struct {
	Date      Date   `json:"date" validate:"required"`
	StepCount int    `json:"step_count" validate:"gte=0"`
	Source    string `json:"source,omitempty"`
}

type VitalCreate struct {
	Type       string    `json:"type" validate:"required"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit" validate:"required"`
	RecordedAt Timestamp `json:"recorded_at" validate:"required"`
}

type ActivityCreate struct {
	Type            ActivityType `json:"type" validate:"required,oneof=run walk cycle gym swim yoga other"`
	DurationMinutes float64      `json:"duration_minutes" validate:"gte=0"`
	DistanceKm      *float64     `json:"distance_km,omitempty" validate:"omitempty,gte=0"`
	CaloriesBurned  *float64     `json:"calories_burned,omitempty" validate:"omitempty,gte=0"`
	Datetime        Timestamp    `json:"datetime" validate:"required"`
	Notes           *string      `json:"notes,omitempty"`
}

type ActivityUpdate struct {
	Type            *ActivityType `json:"type,omitempty" validate:"omitempty,oneof=run walk cycle gym swim yoga other"`
	DurationMinutes *float64      `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	DistanceKm      *float64      `json:"distance_km,omitempty" validate:"omitempty,gte=0"`
	CaloriesBurned  *float64      `json:"calories_burned,omitempty" validate:"omitempty,gte=0"`
	Datetime        *Timestamp    `json:"datetime,omitempty"`
	Notes           *string       `json:"notes,omitempty"`
}

type GoalsUpdate struct {
	DailyStepGoal    *int     `json:"daily_step_goal,omitempty" validate:"omitempty,gte=0"`
	DailyCalorieGoal *float64 `json:"daily_calorie_goal,omitempty" validate:"omitempty,gte=0"`
	DailyProteinGoal *float64 `json:"daily_protein_goal,omitempty" validate:"omitempty,gte=0"`
	DailyCarbsGoal   *float64 `json:"daily_carbs_goal,omitempty" validate:"omitempty,gte=0"`
	DailyFatGoal     *float64 `json:"daily_fat_goal,omitempty" validate:"omitempty,gte=0"`
	SleepHoursGoal   *float64 `json:"sleep_hours_goal,omitempty" validate:"omitempty,gte=0"`
}

type ConnectionsUpdate struct {
	AppleHealthConnected  *bool `json:"apple_health_connected,omitempty"`
	NutritionAPIConnected *bool `json:"nutrition_api_connected,omitempty"`
}
