package types

// User is a registered account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"created_at"`
}

// Token is returned by a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Task struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Title       string         `json:"title"`
	Description NullableString `json:"description"`
	Status      TaskStatus     `json:"status"`
	Tag         TaskTag        `json:"tag"`
	DueDatetime Timestamp      `json:"due_datetime"`
	CreatedAt   Timestamp      `json:"created_at"`
	UpdatedAt   Timestamp      `json:"updated_at"`
}

type Event struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"user_id"`
	Title         string         `json:"title"`
	Description   NullableString `json:"description"`
	StartDatetime Timestamp      `json:"start_datetime"`
	EndDatetime   Timestamp      `json:"end_datetime"`
	Location      NullableString `json:"location"`
	CreatedAt     Timestamp      `json:"created_at"`
	UpdatedAt     Timestamp      `json:"updated_at"`
}

type Meal struct {
	ID               int64       `json:"id"`
	UserID           int64       `json:"user_id"`
	Name             string      `json:"name"`
	MealType         MealType    `json:"meal_type"`
	Datetime         Timestamp   `json:"datetime"`
	Calories         float64     `json:"calories"`
	Carbs            float64     `json:"carbs"`
	Protein          float64     `json:"protein"`
	Fat              float64     `json:"fat"`
	RawNutritionData NullableAny `json:"raw_nutrition_data"`
	CreatedAt        Timestamp   `json:"created_at"`
}

// DailySummary aggregates the meals of one day.
type DailySummary struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"total_calories"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalProtein  float64 `json:"total_protein"`
	TotalFat      float64 `json:"total_fat"`
	Meals         []Meal  `json:"meals"`
}

// StepSummary is the step count of one day.
type StepSummary struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Date      Date   `json:"date"`
	StepCount int    `json:"step_count"`
	Source    string `json:"source"`
}

type Vital struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Type       string    `json:"type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt Timestamp `json:"recorded_at"`
	CreatedAt  Timestamp `json:"created_at"`
}

type Activity struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	Type            ActivityType   `json:"type"`
	DurationMinutes float64        `json:"duration_minutes"`
	DistanceKm      *float64       `json:"distance_km"`
	CaloriesBurned  *float64       `json:"calories_burned"`
	Datetime        Timestamp      `json:"datetime"`
	Notes           NullableString `json:"notes"`
	CreatedAt       Timestamp      `json:"created_at"`
}

type Insight struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Category    InsightCategory `json:"category"`
	Message     string          `json:"message"`
	IsDismissed bool            `json:"is_dismissed"`
	CreatedAt   Timestamp       `json:"created_at"`
}

// Goals holds the daily targets of a user and the state of the external
// integrations.
type Goals struct {
	ID                    int64   `json:"id"`
	UserID                int64   `json:"user_id"`
	DailyStepGoal         int     `json:"daily_step_goal"`
	DailyCalorieGoal      float64 `json:"daily_calorie_goal"`
	DailyProteinGoal      float64 `json:"daily_protein_goal"`
	DailyCarbsGoal        float64 `json:"daily_carbs_goal"`
	DailyFatGoal          float64 `json:"daily_fat_goal"`
	SleepHoursGoal        float64 `json:"sleep_hours_goal"`
	AppleHealthConnected  bool    `json:"apple_health_connected"`
	NutritionAPIConnected bool    `json:"nutrition_api_connected"`
}

type Connections struct {
	AppleHealthConnected  bool `json:"apple_health_connected"`
	NutritionAPIConnected bool `json:"nutrition_api_connected"`
}

// ServerInfo is returned by the API root.
type ServerInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

type HealthStatus struct {
	Status string `json:"status"`
}
