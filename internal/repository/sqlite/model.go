package sqlite

// taskRow mirrors a row of the tasks table.
type taskRow struct {
	Owner       string
	ID          int
	Title       string
	Description string
	Priority    int
	Completed   bool
	CreatedAt   string
}

// userRow mirrors a row of the users table.
type userRow struct {
	Key       string
	DisplayID int
	Name      string
	Email     string
	CreatedAt string
}
