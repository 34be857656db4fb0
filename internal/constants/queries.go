package constants

// Raw SQL for the legacy sqlx repositories. The event model lives in GORM;
// the single-session check-in engine predates it and keeps its hand-written
// queries.

const GetActiveCheckInByMember = `
	SELECT id, station_id, member_id, activity_id, check_in_time,
	       method, location, is_offsite, is_active, created_at, updated_at
	FROM check_ins
	WHERE member_id = $1 AND station_id = $2 AND is_active = true
	FOR UPDATE;
`

const InsertCheckIn = `
	INSERT INTO check_ins (
		id, station_id, member_id, activity_id, check_in_time,
		method, location, is_offsite, is_active
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
	RETURNING created_at, updated_at;
`

const DeactivateCheckIn = `
	UPDATE check_ins
	SET is_active = false, updated_at = now()
	WHERE id = $1;
`

const ListActiveCheckIns = `
	SELECT id, station_id, member_id, activity_id, check_in_time,
	       method, location, is_offsite, is_active, created_at, updated_at
	FROM check_ins
	WHERE station_id = $1 AND is_active = true
	ORDER BY check_in_time DESC;
`

const GetStatusByApiKey = `
	SELECT id, key, status, is_admin, station_id, created_at
	FROM api_keys
	WHERE key = $1;
`
