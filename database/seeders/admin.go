package seeders

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shashiranjanraj/bookstore/app/routes"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/config"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates ADMIN_USERNAME with ADMIN_PASSWORD and promotes it.
// Without ADMIN_PASSWORD nothing is created.
func SeedAdmin(ctx context.Context, svc routes.Deps, out io.Writer) error {
	password := config.AdminPassword()
	if password == "" {
		fmt.Fprint(out, "(ADMIN_PASSWORD not set, skipped) ")
		return nil
	}

	username := config.AdminUsername()
	_, err := svc.Auth.Register(ctx, services.Registration{
		Username: username,
		Email:    config.AdminEmail(),
		Password: password,
	})
	if err != nil && !errors.Is(err, services.ErrConflict) {
		return err
	}
	_, err = svc.Auth.MakeAdmin(ctx, username)
	return err
}
