package sqlite

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

const (
	taskColumns = `owner, id, title, description, priority, completed, created_at`
	userColumns = `user_key, display_id, name, email, created_at`
)

func scanTask(s Scanner) (taskRow, error) {
	var r taskRow
	err := s.Scan(&r.Owner, &r.ID, &r.Title, &r.Description, &r.Priority, &r.Completed, &r.CreatedAt)
	return r, err
}

func scanUser(s Scanner) (userRow, error) {
	var r userRow
	err := s.Scan(&r.Key, &r.DisplayID, &r.Name, &r.Email, &r.CreatedAt)
	return r, err
}

func scanString(s Scanner) (string, error) {
	var v string
	err := s.Scan(&v)
	return v, err
}
