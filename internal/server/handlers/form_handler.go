package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/activity"
	"github.com/mamadbah2/stockdesk/internal/service/registration"
	"github.com/mamadbah2/stockdesk/internal/service/session"
	"github.com/mamadbah2/stockdesk/internal/service/transaction"
)

// SessionCookie holds the id of the browser's form session.
const SessionCookie = "stockdesk_session"

const historyLimit = 20

var modeLabels = map[models.Mode]string{
	models.ModeCreate:   "Cadastrar",
	models.ModeUpdate:   "Atualizar",
	models.ModeStockIn:  "Entrada",
	models.ModeStockOut: "Saída",
}

// SessionStore resolves the form session of a request.
type SessionStore interface {
	GetOrCreate(ctx context.Context, id string) *session.Session
}

// HistoryProvider reads back journaled activity.
type HistoryProvider interface {
	History(ctx context.Context, goodsID int64, limit int64) ([]models.ActivityRecord, error)
}

// FormHandler serves the inventory transaction form.
type FormHandler struct {
	sessions SessionStore
	history  HistoryProvider
	logger   *zap.Logger
	maxAge   int
}

// NewFormHandler constructs the HTTP handler adapter. history may be nil.
func NewFormHandler(sessions SessionStore, history HistoryProvider, cookieMaxAge int, logger *zap.Logger) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{sessions: sessions, history: history, logger: logger, maxAge: cookieMaxAge}
}

type modeButton struct {
	Slug   string
	Label  string
	Active bool
}

type pageData struct {
	Title         string
	ModeSlug      string
	Modes         []modeButton
	View          transaction.View
	Registration  registration.View
	ConfirmPrompt string
}

type suggestion struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// Show renders the form of the current session.
func (h *FormHandler) Show(c *gin.Context) {
	sess := h.session(c)
	if err := sess.Sync(c.Request.Context()); err != nil {
		h.logger.Warn("catalog refresh failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
	h.render(c, sess)
}

// SelectMode switches the active workflow.
func (h *FormHandler) SelectMode(c *gin.Context) {
	mode, err := models.ParseMode(c.Param("mode"))
	if err != nil {
		c.String(http.StatusNotFound, "modo desconhecido")
		return
	}

	sess := h.session(c)
	sess.Transaction.SelectMode(mode)
	h.redirect(c)
}

// Search filters the catalog and renders the page with suggestions.
func (h *FormHandler) Search(c *gin.Context) {
	sess := h.session(c)
	if sess.Transaction.Mode() != models.ModeUpdate {
		h.redirect(c)
		return
	}
	sess.Transaction.Search(c.Query("q"))
	h.render(c, sess)
}

// Suggestions is the autocomplete feed for the update search box.
func (h *FormHandler) Suggestions(c *gin.Context) {
	sess := h.session(c)
	query := c.Query("q")

	out := make([]suggestion, 0)
	if sess.Transaction.Mode() == models.ModeUpdate && query != "" {
		for _, g := range sess.Transaction.Search(query) {
			out = append(out, suggestion{ID: g.ID, Name: g.Name})
		}
	}
	c.JSON(http.StatusOK, out)
}

// SelectSuggestion loads a catalog entry into the update draft.
func (h *FormHandler) SelectSuggestion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "identificador inválido")
		return
	}

	sess := h.session(c)
	h.finish(c, sess.Transaction.SelectSuggestion(id))
}

// EditDraft stores posted field values without submitting them.
func (h *FormHandler) EditDraft(c *gin.Context) {
	sess := h.session(c)
	h.finish(c, h.applyDraft(c, sess))
}

// SubmitTransaction records the posted stock movement.
func (h *FormHandler) SubmitTransaction(c *gin.Context) {
	sess := h.session(c)
	if err := h.applyDraft(c, sess); err != nil {
		h.finish(c, err)
		return
	}
	h.finish(c, sess.Transaction.Submit(c.Request.Context()))
}

// RegisterGoods creates a new catalog entry.
func (h *FormHandler) RegisterGoods(c *gin.Context) {
	sess := h.session(c)
	goods := models.Goods{
		Name:               c.PostForm("nome"),
		RegistrationNumber: c.PostForm("numero_registro"),
		Manufacturer:       c.PostForm("fabricante"),
		Type:               c.PostForm("tipo"),
		Description:        c.PostForm("descricao"),
	}
	h.finish(c, sess.Registration.Submit(c.Request.Context(), goods))
}

// UpdateGoods saves the posted fields onto the selected goods.
func (h *FormHandler) UpdateGoods(c *gin.Context) {
	sess := h.session(c)
	if err := h.applyDraft(c, sess); err != nil {
		h.finish(c, err)
		return
	}
	h.finish(c, sess.Transaction.Update(c.Request.Context()))
}

// DeleteGoods removes the selected goods once the user confirmed.
func (h *FormHandler) DeleteGoods(c *gin.Context) {
	sess := h.session(c)
	confirmed := c.PostForm("confirm") == "true"
	h.finish(c, sess.Transaction.Delete(c.Request.Context(), confirmed))
}

// Activity returns the journaled activity of one catalog entry.
func (h *FormHandler) Activity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goods id"})
		return
	}
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "activity history unavailable"})
		return
	}

	records, err := h.history.History(c.Request.Context(), id, historyLimit)
	if err != nil {
		if errors.Is(err, activity.ErrHistoryUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "activity history unavailable"})
			return
		}
		h.logger.Error("failed to read activity history", zap.Int64("goods_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to read activity history"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *FormHandler) session(c *gin.Context) *session.Session {
	id, _ := c.Cookie(SessionCookie)
	sess := h.sessions.GetOrCreate(c.Request.Context(), id)

	// The server expires sessions after an idle period, so the cookie's
	// lifetime slides with every request too.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sess.ID, h.maxAge, "/", "", false, true)
	return sess
}

func (h *FormHandler) render(c *gin.Context, sess *session.Session) {
	view := sess.Transaction.Render()

	modes := make([]modeButton, 0, len(modeLabels))
	for _, m := range models.Modes() {
		modes = append(modes, modeButton{Slug: m.String(), Label: modeLabels[m], Active: m == view.Mode})
	}

	c.HTML(http.StatusOK, "form.html", pageData{
		Title:         view.Mode.Title(),
		ModeSlug:      view.Mode.String(),
		Modes:         modes,
		View:          view,
		Registration:  sess.Registration.Render(),
		ConfirmPrompt: transaction.DeleteConfirmPrompt,
	})
}

// applyDraft copies the posted draft fields; absent fields keep their value.
func (h *FormHandler) applyDraft(c *gin.Context, sess *session.Session) error {
	var goodsID *int64
	if raw, ok := c.GetPostForm("mercadoria_id"); ok {
		var id int64
		if raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return errBadField
			}
			id = parsed
		}
		goodsID = &id
	}

	return sess.Transaction.UpdateDraft(func(d *models.TransactionDraft) {
		if goodsID != nil {
			d.GoodsID = *goodsID
		}
		fields := map[string]*string{
			"quantidade":      &d.Quantity,
			"data_hora":       &d.Timestamp,
			"local":           &d.Location,
			"nome":            &d.Name,
			"numero_registro": &d.RegistrationNumber,
			"fabricante":      &d.Manufacturer,
			"tipo":            &d.Type,
			"descricao":       &d.Description,
		}
		for key, dst := range fields {
			if v, ok := c.GetPostForm(key); ok {
				*dst = v
			}
		}
	})
}

var errBadField = errors.New("malformed form field")

// finish answers a form post. Outcomes the user should see are already in
// the form's banners, so those just go back to the page.
func (h *FormHandler) finish(c *gin.Context, err error) {
	switch {
	case err == nil,
		errors.Is(err, transaction.ErrNoSelection),
		errors.Is(err, transaction.ErrInvalidQuantity),
		errors.Is(err, transaction.ErrNotConfirmed),
		errors.Is(err, transaction.ErrWrongMode),
		errors.Is(err, registration.ErrNameRequired):
		h.redirect(c)
	case errors.Is(err, transaction.ErrBusy), errors.Is(err, registration.ErrBusy):
		c.String(http.StatusConflict, "Operação em andamento. Aguarde.")
	case errors.Is(err, transaction.ErrUnknownGoods):
		c.String(http.StatusNotFound, "mercadoria não encontrada")
	case errors.Is(err, errBadField):
		c.String(http.StatusBadRequest, "campo inválido")
	case errors.Is(err, transaction.ErrClosed):
		c.String(http.StatusGone, "sessão encerrada")
	default:
		h.logger.Error("form action failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.String(http.StatusInternalServerError, "erro interno")
	}
}

func (h *FormHandler) redirect(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
