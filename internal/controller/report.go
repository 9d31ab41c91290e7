package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/fx"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/flog"
	"github.com/reporthub/backend/internal/render"
	"github.com/reporthub/backend/internal/server/svr"
	"github.com/reporthub/backend/internal/service"
	"github.com/reporthub/backend/internal/util/rekuest"
)

type Report struct {
	fx.In

	Config        *appconfig.Config
	ReportService *service.Report
	QueryService  *service.Query
	Renderer      *render.Renderer
}

func RegisterReport(root *svr.Root, c Report) {
	root.Post("/report", c.SubmitReport)
	root.Get("/reports", c.ListReports)
	root.Get("/report/:id", c.ViewReport)
	root.Get("/report/:id/json", c.ReportJSON)
}

// SubmitReport ingests one raw report submission. The body travels to the
// service verbatim: validation is the verifier chain's job, not the
// transport's. ctx.Body() aliases fasthttp's request buffer, which is
// recycled after the handler returns, while the store retains the raw
// payload for the report's lifetime, so it must be copied here.
func (c *Report) SubmitReport(ctx *fiber.Ctx) error {
	handle, err := c.ReportService.Ingest(ctx.UserContext(), utils.CopyBytes(ctx.Body()), ctx.IP())
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx, "report.submit.accepted").
		Str("reportId", handle.ID).
		Msg("accepted report submission")

	return ctx.Status(fiber.StatusCreated).JSON(types.ReportCreatedResponse{
		ID:        handle.ID,
		Link:      c.Config.BaseURL + "/report/" + handle.ID + "/json",
		ViewLink:  c.Config.BaseURL + "/report/" + handle.ID,
		CreatedAt: handle.CreatedAt,
	})
}

func (c *Report) ListReports(ctx *fiber.Ctx) error {
	var query types.ReportListQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	summaries, total, err := c.QueryService.ListSummaries(ctx.UserContext(), &query)
	if err != nil {
		return err
	}

	ctx.Set(constant.TotalCountHeader, strconv.Itoa(total))
	return ctx.JSON(summaries)
}

func (c *Report) ViewReport(ctx *fiber.Ctx) error {
	rm, err := c.QueryService.GetRenderModel(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	page, err := c.Renderer.Report(rm)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Send(page)
}

func (c *Report) ReportJSON(ctx *fiber.Ctx) error {
	report, err := c.QueryService.GetReportByID(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(report)
}
