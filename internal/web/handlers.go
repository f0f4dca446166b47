package web

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/davidroman0O/firm-catalog/catalog"
)

const sessionCookie = "catalog_session"

const alertSessionExpired = "Sua sessão expirou. Confira os dados e envie o produto novamente."

type page struct {
	View  catalog.View
	Alert string
}

// controller resolves the session's controller and refreshes its cookie.
// fresh reports that the request's session was unknown, expired or closed
// and a new one was mounted.
func (m *Module) controller(c *fiber.Ctx) (ctrl *catalog.Controller, fresh bool) {
	requested := c.Cookies(sessionCookie)
	id, ctrl := m.sessions.get(requested)
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.cfg.SessionTTL / time.Second),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctrl, id != requested
}

func (m *Module) index(c *fiber.Ctx) error {
	ctrl, _ := m.controller(c)
	return m.render(c, fiber.StatusOK, ctrl.View(), "")
}

func (m *Module) submit(c *fiber.Ctx) error {
	form := catalog.Form{
		Name:        c.FormValue("name"),
		Price:       c.FormValue("price"),
		Description: c.FormValue("description"),
	}

	ctrl, fresh := m.controller(c)
	if !fresh {
		_, err := ctrl.SubmitForm(form)
		switch {
		case err == nil:
			return c.Redirect("/", fiber.StatusSeeOther)
		case errors.Is(err, catalog.ErrInvalidPrice):
			return m.render(c, fiber.StatusUnprocessableEntity, ctrl.View(), catalog.AlertInvalidPrice)
		case !errors.Is(err, catalog.ErrClosed):
			return errors.Wrap(err, "submit product")
		}
		// closed by the janitor between lookup and submit
		ctrl, _ = m.controller(c)
	}

	// a new session is still loading; keep the fields and ask to resubmit
	ctrl.SetForm(form)
	return m.render(c, fiber.StatusConflict, ctrl.View(), alertSessionExpired)
}

func (m *Module) api(c *fiber.Ctx) error {
	ctrl, _ := m.controller(c)
	return c.JSON(ctrl.View())
}

func (m *Module) render(c *fiber.Ctx, status int, view catalog.View, alert string) error {
	var buf bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&buf, "index.html", page{View: view, Alert: alert}); err != nil {
		return errors.Wrap(err, "render page")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func (m *Module) requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	m.log.Debug("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

func (m *Module) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		m.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(utils.StatusMessage(code))
}
