package http

import (
	"errors"

	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/input"
	"skinlog-bot/internal/ports/output"
	"skinlog-bot/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	trades    input.TradeLogService
	pinger    output.Pinger
	validator validator.Validator
}

// New func - Creates new HTTP handler. pinger may be nil when the row
// store cannot report its health.
func New(trades input.TradeLogService, pinger output.Pinger) *HTTPHandler {
	return &HTTPHandler{
		trades:    trades,
		pinger:    pinger,
		validator: validator.New(),
	}
}

// HealthCheck func
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 503 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.pinger != nil {
		if err := hdl.pinger.Ping(c.UserContext()); err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(ResponseBody{Status: ServiceUnavailable})
		}
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// GetLastLog godoc
// @Summary Last trade log
// @Description Rows sharing the most recent date. Data is empty when nothing was logged.
// @Tags TRADES
// @Produce json
// @Success 200 {object} ResponseBody{data=LastLogResponse}
// @Failure 502 {object} ResponseBody
// @Router /v1/api/trades/last [get]
func (hdl *HTTPHandler) GetLastLog(c *fiber.Ctx) error {
	last, err := hdl.trades.LastLog(c.UserContext())
	if err != nil {
		return upstreamError(c, err)
	}
	if last == nil {
		msg := ResponseBody{Status: Success}
		msg.Status.Message = []string{domain.NoPreviousLogs}
		return c.Status(fiber.StatusOK).JSON(msg)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: newLastLogResponse(last)})
}

// GetStatistics godoc
// @Summary Trade statistics
// @Tags TRADES
// @Produce json
// @Success 200 {object} ResponseBody{data=StatisticsResponse}
// @Failure 502 {object} ResponseBody
// @Router /v1/api/trades/statistics [get]
func (hdl *HTTPHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := hdl.trades.Statistics(c.UserContext())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: newStatisticsResponse(stats)})
}

// GetRecent godoc
// @Summary Recent trades
// @Description Most recent trades first
// @Tags TRADES
// @Produce json
// @param limit query int false "limit (1-50)"
// @Success 200 {object} ResponseBody{data=[]TradeResponse}
// @Failure 400 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/trades/recent [get]
func (hdl *HTTPHandler) GetRecent(c *fiber.Ctx) error {
	var request RecentTradesRequest
	if err := c.QueryParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	rows, err := hdl.trades.Recent(c.UserContext(), request.LimitOrDefault())
	if err != nil {
		return upstreamError(c, err)
	}
	data := newTradeResponses(rows)
	total := len(data)
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: data, TotalItem: &total})
}

func upstreamError(c *fiber.Ctx, err error) error {
	logrus.Errorln(err)
	if errors.Is(err, domain.ErrUpstreamFetch) {
		return c.Status(fiber.StatusBadGateway).JSON(ResponseBody{Status: BadGateway})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
}
