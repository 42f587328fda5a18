package handler

import (
	"vibeswipe/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupProfile struct {
	container *do.Injector
}

func (gr *groupProfile) Show(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	address := queryAddress(c)
	if address == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errMissingAddress, errorx.Validation))
	}

	ctx := c.Request().Context()
	profile, err := serviceTournament.GetProfile(ctx, address)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, profile, nil)
}
