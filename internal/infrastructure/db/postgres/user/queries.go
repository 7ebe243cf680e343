package user

const allColumns = `guid, login, password, name, gender, birthday, admin, created_on, created_by, modified_on, modified_by, revoked_on, revoked_by`

const (
	SelectUsers = `
		SELECT ` + allColumns + `
		FROM users
	`
	SelectActiveUsers = `
		SELECT ` + allColumns + `
		FROM users
		WHERE revoked_on IS NULL
		ORDER BY created_on
	`
	// Age is a crude calendar-year difference, not an exact birthday check.
	SelectUsersOlderThan = `
		SELECT ` + allColumns + `
		FROM users
		WHERE birthday IS NOT NULL
		  AND extract(year FROM now()) - extract(year FROM birthday) > $1
	`
	SelectUsersByAuditRef = `
		SELECT ` + allColumns + `
		FROM users
		WHERE created_by = $1 OR modified_by = $1 OR revoked_by = $1
	`
	SelectUserByLogin = `
		SELECT ` + allColumns + `
		FROM users
		WHERE login = $1
	`
	SelectUserByGUID = `
		SELECT ` + allColumns + `
		FROM users
		WHERE guid = $1
	`
	SelectUserByCredentials = `
		SELECT ` + allColumns + `
		FROM users
		WHERE login = $1 AND password = $2
	`
	SelectExistsByLogin = `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)`
	SelectExistsByGUID  = `SELECT EXISTS (SELECT 1 FROM users WHERE guid = $1)`
	InsertUser          = `
		INSERT INTO users (` + allColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	// guid and created_on are immutable; created_by is written because a
	// login rename rewrites audit references on other records.
	UpdateUserByGUID = `
		UPDATE users
		SET login = $1,
		    password = $2,
		    name = $3,
		    gender = $4,
		    birthday = $5,
		    admin = $6,
		    created_by = $7,
		    modified_on = $8,
		    modified_by = $9,
		    revoked_on = $10,
		    revoked_by = $11
		WHERE guid = $12
		RETURNING ` + allColumns + `
	`
	DeleteUserByLogin = `DELETE FROM users WHERE login = $1`
)
