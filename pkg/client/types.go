package client

// Workout is one scheduled training session.
type Workout struct {
	ID     int64  `json:"id"`
	Due    string `json:"due"`
	Title  string `json:"title"`
	State  string `json:"state"`
	TeamID int64  `json:"team_id,omitempty"`
}

// WorkoutItem is a single exercise entry belonging to one workout.
type WorkoutItem struct {
	ID        int64  `json:"id"`
	WorkoutID int64  `json:"workout_id"`
	Name      string `json:"name"`
	Info      string `json:"info"`
	Result    string `json:"result"`
	State     string `json:"state"`
}

// Meta is the pagination metadata attached to every listing page.
type Meta struct {
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// Page is one page of the workouts listing: the workouts due in that
// window plus the workout items that belong to them.
type Page struct {
	Meta         Meta          `json:"meta"`
	Workouts     []Workout     `json:"workouts"`
	WorkoutItems []WorkoutItem `json:"workout_items"`
}
