package db

import "context"

// GetUserEmail resolves a recipient address from the shared LMS users table.
func (s *DB) GetUserEmail(ctx context.Context, userID int64) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetUserEmail")
	defer func() { s.endSpan(span, err) }()

	var email string
	err = s.conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		return "", s.mapError(err)
	}

	return email, nil
}
