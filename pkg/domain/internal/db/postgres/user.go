package postgres

import (
	"context"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
	"github.com/foodgram-dev/foodgram/pkg/domain"
)

// GetUsers retrieves users by ids. Unknown ids are left out.
func GetUsers(ctx context.Context, conn kpool.Queryer, ids []int) (map[int]domain.User, error) {
	rows, err := conn.Query(
		ctx,
		`
		select
			"id", "email", "username", "first_name", "last_name",
			"password_hash", coalesce("avatar", ''),
			"is_staff", "is_superuser", "is_active", "date_joined"
		from "users"
		where "id" = any($1::bigint[])
		`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := map[int]domain.User{}
	for rows.Next() {
		u := domain.User{}
		if err := rows.Scan(
			&u.Id, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.HashedPassword, &u.Avatar,
			&u.IsStaff, &u.IsSuperuser, &u.IsActive, &u.DateJoined,
		); err != nil {
			return nil, err
		}
		users[u.Id] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
