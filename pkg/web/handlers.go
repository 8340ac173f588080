package web

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcsv/go-binder/binder"
	"github.com/spf13/cast"
)

// WebhookEvent is the inbound payload delivered by the chat platform.
type WebhookEvent struct {
	Type  string `json:"webhook_event_type"`
	Event struct {
		FromAccountID int64  `json:"from_account_id"`
		ToAccountID   int64  `json:"to_account_id"`
		RoomID        int64  `json:"room_id"`
		MessageID     string `json:"message_id"`
		Body          string `json:"body"`
		SendTime      int64  `json:"send_time"`
	} `json:"webhook_event"`
}

// verifyMw checks the platform's HMAC-SHA256 body signature when a
// webhook secret is configured, and restores the body for binding.
func (s *server) verifyMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			apiFail(w, r, 400, err)
			return
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, s.secret)
		mac.Write(body)
		want := mac.Sum(nil)
		got, err := base64.StdEncoding.DecodeString(r.Header.Get("X-ChatWorkWebhookSignature"))
		if err != nil || !hmac.Equal(want, got) {
			logger().Infow("webhook signature mismatch", "ip", r.RemoteAddr)
			apiFail(w, r, 401, "invalid signature")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) postWebhook(w http.ResponseWriter, r *http.Request) {
	var ev WebhookEvent
	if err := binder.BindBody(r, &ev); err != nil {
		apiFail(w, r, 400, err)
		return
	}
	// events without a room id are not addressable, drop them quietly
	if ev.Event.RoomID == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ctx := r.Context()
	userID := cast.ToString(ev.Event.FromAccountID)
	if err := s.elog.Put(ctx, userID+"：メッセージが送信されました。"); err != nil {
		logger().Infow("put event log fail", "err", err)
	}

	reply, err := s.relay.Process(ctx, userID, ev.Event.Body)
	if err != nil {
		logger().Infow("process fail", "user", userID, "room", ev.Event.RoomID, "err", err)
		_ = s.elog.Put(ctx, err.Error())
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err = s.notifier.SendMessage(ctx, ev.Event.RoomID, envelope(s.replyTitle, reply)); err != nil {
		logger().Infow("send reply fail", "room", ev.Event.RoomID, "err", err)
		_ = s.elog.Put(ctx, err.Error())
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) getHistory(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	data, err := s.hist.Fetch(r.Context(), uid)
	if err != nil {
		apiFail(w, r, 500, err)
		return
	}
	apiOk(w, r, data, len(data))
}
