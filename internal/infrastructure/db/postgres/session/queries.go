package session

const SelectSessionWithUser = `
	SELECT s.id, s.user_id, s.expires_at, s.created_at,
	       u.id, u.external_id, u.email, u.role, u.created_at, u.updated_at
	FROM sessions s
	LEFT JOIN users u ON u.id = s.user_id
	WHERE s.id = $1
`
