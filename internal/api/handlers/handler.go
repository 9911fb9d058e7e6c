package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/oauth2"

	"learnhub/internal/config"
	"learnhub/internal/db"
	"learnhub/internal/quizgen"
	"learnhub/internal/r2"
)

// UserProfile stores information about the authenticated user. It is kept
// in the session, so it must stay gob-encodable.
type UserProfile struct {
	DatabaseID uuid.UUID `json:"-"`
	GoogleID   string    `json:"google_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Picture    string    `json:"picture"`
	Role       string    `json:"role"`
}

// Session keys - keep these consistent.
const (
	OauthStateSessionKey = "oauthstate"
	ProfileSessionKey    = "profile"
)

// Activity log actions.
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionCourseCreate   = "course_create"
	ActionMaterialUpload = "material_upload"
	ActionQuizGenerate   = "quiz_generate"
	ActionQuizSubmit     = "quiz_submit"
	ActionEnroll         = "enroll"
	ActionError          = "error"
)

// DiscordEmbedField is one field of a Discord embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// DiscordEmbed is the embed payload sent to the ops webhook.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
}

// WebhookPayload is the structure Discord expects for webhook requests.
type WebhookPayload struct {
	Username string         `json:"username,omitempty"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

// Handler contains the API handlers' dependencies.
type Handler struct {
	OauthConfig   *oauth2.Config
	Config        *config.Config
	DB            *db.DB
	Generator     *quizgen.Generator
	R2            *r2.Client
	DiscordClient *http.Client
}

// NewHandler creates a new Handler. r2Client may be nil when object storage
// is not configured.
func NewHandler(oauth *oauth2.Config, cfg *config.Config, database *db.DB, generator *quizgen.Generator, r2Client *r2.Client) *Handler {
	return &Handler{
		OauthConfig: oauth,
		Config:      cfg,
		DB:          database,
		Generator:   generator,
		R2:          r2Client,
		DiscordClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// sendDiscordNotification sends an embed to the configured ops webhook.
// It runs asynchronously to avoid blocking the request flow, and is a
// no-op when no webhook is configured.
func (h *Handler) sendDiscordNotification(embed DiscordEmbed) {
	webhookURL := h.Config.DiscordWebhookURL
	if webhookURL == "" {
		return
	}

	go func() {
		if embed.Timestamp == "" {
			embed.Timestamp = time.Now().Format(time.RFC3339)
		}

		payload := WebhookPayload{
			Username: "LearnHub Notifier",
			Embeds:   []DiscordEmbed{embed},
		}

		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			log.Printf("ERROR: Failed to marshal Discord embed payload: %v", err)
			return
		}

		req, err := http.NewRequest(http.MethodPost, webhookURL, bytes.NewBuffer(jsonPayload))
		if err != nil {
			log.Printf("ERROR: Failed to create Discord embed request: %v", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := h.DiscordClient.Do(req)
		if err != nil {
			log.Printf("ERROR: Failed to send Discord notification: %v", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			body, _ := io.ReadAll(resp.Body)
			log.Printf("ERROR: Discord notification failed with status %d: %s", resp.StatusCode, string(body))
		}
	}()
}

// handleError logs an error, records it in the activity log, notifies the
// ops webhook and aborts the request with a JSON error body.
func (h *Handler) handleError(c *gin.Context, userID uuid.UUID, statusCode int, errorContext string, err error) {
	log.Printf("ERROR: %s: %v (UserID: %s)", errorContext, err, userID)

	h.logActivity(c.Request.Context(), userID, ActionError, "", uuid.Nil,
		map[string]interface{}{
			"error_context": errorContext,
			"error_message": err.Error(),
			"request_path":  c.Request.URL.Path,
			"http_status":   statusCode,
		})

	errorEmbed := DiscordEmbed{
		Title:       fmt.Sprintf("🚨 API Error: %s", errorContext),
		Description: fmt.Sprintf("```%s```", err.Error()),
		Color:       0xFF0000,
		Fields: []DiscordEmbedField{
			{Name: "HTTP Status", Value: fmt.Sprintf("%d", statusCode), Inline: true},
			{Name: "Path", Value: c.Request.URL.Path, Inline: false},
		},
	}
	if userID != uuid.Nil {
		errorEmbed.Fields = append(errorEmbed.Fields, DiscordEmbedField{Name: "User ID", Value: fmt.Sprintf("`%s`", userID.String()), Inline: true})
	}
	h.sendDiscordNotification(errorEmbed)

	c.AbortWithStatusJSON(statusCode, gin.H{"error": fmt.Sprintf("%s: %v", errorContext, err)})
}

// logActivity creates an activity log entry. Failures are logged and
// swallowed; auditing never blocks the main flow.
func (h *Handler) logActivity(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, details map[string]interface{}) {
	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			log.Printf("ERROR: Failed to marshal activity log details for action %s: %v", action, err)
			detailsJSON = nil
		}
	}

	err := h.DB.Queries.CreateActivityLog(ctx, db.CreateActivityLogParams{
		UserID:     pgtype.UUID{Bytes: userID, Valid: userID != uuid.Nil},
		Action:     action,
		TargetType: pgtype.Text{String: targetType, Valid: targetType != ""},
		TargetID:   pgtype.UUID{Bytes: targetID, Valid: targetID != uuid.Nil},
		Details:    detailsJSON,
	})
	if err != nil {
		log.Printf("ERROR: Failed to create activity log for action %s: %v", action, err)
	}
}

// currentUserID pulls the authenticated user's id out of the gin context
// (set by the AuthRequired middleware).
func (h *Handler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: Invalid user ID type"})
		return uuid.Nil, false
	}
	return userID, true
}

// currentProfile pulls the full session profile out of the gin context.
func (h *Handler) currentProfile(c *gin.Context) (UserProfile, bool) {
	profileValue, exists := c.Get("userProfile")
	if !exists {
		return UserProfile{}, false
	}
	profile, ok := profileValue.(UserProfile)
	return profile, ok
}
