package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"learnhub/internal/db"
	"learnhub/internal/models"
)

// HandleGoogleLogin initiates the Google OAuth flow.
func (h *Handler) HandleGoogleLogin(c *gin.Context) {
	session := sessions.Default(c)

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		log.Printf("ERROR: Failed to generate state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate state"})
		return
	}
	oauthStateString := base64.URLEncoding.EncodeToString(stateBytes)

	session.Set(OauthStateSessionKey, oauthStateString)
	if err := session.Save(); err != nil {
		log.Printf("ERROR: Failed to save session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	url := h.OauthConfig.AuthCodeURL(oauthStateString, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// HandleGoogleCallback handles the redirect back from Google, creating the
// user record on first login. New accounts start as students.
func (h *Handler) HandleGoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	retrievedState := session.Get(OauthStateSessionKey)
	originalState := c.Query("state")

	if originalState == "" || retrievedState == nil || retrievedState.(string) != originalState {
		log.Printf("WARN: Invalid state parameter. Session state: %v, Query state: %s", retrievedState, originalState)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid state parameter."})
		return
	}

	code := c.Query("code")
	token, err := h.OauthConfig.Exchange(context.Background(), code)
	if err != nil {
		log.Printf("ERROR: Failed to exchange code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange code"})
		return
	}
	if !token.Valid() {
		log.Printf("WARN: Retrieved invalid token.")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Retrieved invalid token"})
		return
	}

	client := h.OauthConfig.Client(context.Background(), token)
	oauth2Service, err := oauth2api.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		log.Printf("ERROR: Failed to create OAuth2 service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create OAuth2 service"})
		return
	}

	userinfo, err := oauth2Service.Userinfo.V2.Me.Get().Do()
	if err != nil {
		log.Printf("ERROR: Failed to get user info: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user info"})
		return
	}

	ctx := c.Request.Context()
	dbUser, err := h.DB.Queries.GetUserByEmail(ctx, userinfo.Email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("INFO: User with email %s not found, creating new user.", userinfo.Email)
			dbUser, err = h.DB.Queries.CreateUser(ctx, db.CreateUserParams{
				GoogleID: userinfo.Id,
				Email:    userinfo.Email,
				Name:     userinfo.Name,
				Picture:  userinfo.Picture,
				Role:     models.RoleStudent,
			})
			if err != nil {
				log.Printf("ERROR: Failed to create user: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user profile"})
				return
			}
			log.Printf("INFO: Created user %s for email %s", dbUser.ID, dbUser.Email)

			h.logActivity(ctx, dbUser.ID, ActionLogin, "user", dbUser.ID,
				map[string]interface{}{"email": dbUser.Email, "signup": true})
			h.sendDiscordNotification(DiscordEmbed{
				Title:       "🎉 New Signup",
				Description: fmt.Sprintf("%s (%s)", dbUser.Name, dbUser.Email),
				Color:       0x57F287,
			})
		} else {
			log.Printf("ERROR: Failed to get user by email: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking user profile"})
			return
		}
	} else {
		log.Printf("INFO: Found existing user %s for email %s", dbUser.ID, dbUser.Email)
		h.logActivity(ctx, dbUser.ID, ActionLogin, "user", dbUser.ID,
			map[string]interface{}{"email": dbUser.Email, "signup": false})
	}

	profile := UserProfile{
		DatabaseID: dbUser.ID,
		GoogleID:   userinfo.Id,
		Email:      userinfo.Email,
		Name:       userinfo.Name,
		Picture:    userinfo.Picture,
		Role:       string(dbUser.Role),
	}

	session.Set(ProfileSessionKey, profile)
	session.Delete(OauthStateSessionKey)
	if err := session.Save(); err != nil {
		log.Printf("ERROR: Failed to save session after login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	frontendURL := h.Config.FrontendURL
	if frontendURL == "" {
		frontendURL = "/"
	}
	log.Printf("INFO: Redirecting user %s to frontend: %s", profile.Email, frontendURL)
	c.Redirect(http.StatusTemporaryRedirect, frontendURL)
}

// HandleUserProfile returns the session profile of the current user.
func (h *Handler) HandleUserProfile(c *gin.Context) {
	session := sessions.Default(c)
	profileData := session.Get(ProfileSessionKey)

	profile, ok := profileData.(UserProfile)
	if !ok || profileData == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated or session invalid"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// HandleAuthStatus checks if a user is currently authenticated via session.
func (h *Handler) HandleAuthStatus(c *gin.Context) {
	session := sessions.Default(c)
	profileData := session.Get(ProfileSessionKey)

	profile, ok := profileData.(UserProfile)
	if !ok || profileData == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          profile,
	})
}

// HandleLogout clears the session.
func (h *Handler) HandleLogout(c *gin.Context) {
	session := sessions.Default(c)

	userID := uuid.Nil
	if profile, ok := h.currentProfile(c); ok {
		userID = profile.DatabaseID
		log.Printf("INFO: Logging out user %s (ID: %s)", profile.Email, userID)
	}

	session.Clear()
	session.Options(sessions.Options{MaxAge: -1})
	if err := session.Save(); err != nil {
		log.Printf("ERROR: Failed to save session during logout for user %s: %v", userID, err)
	}

	if userID != uuid.Nil {
		h.logActivity(c.Request.Context(), userID, ActionLogout, "user", userID, nil)
	}

	c.Status(http.StatusOK)
}

// UpdateRoleRequest is the body of HandleUpdateRole.
type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// HandleUpdateRole switches the current user between student and
// instructor. The session profile is refreshed so the new role takes
// effect immediately.
func (h *Handler) HandleUpdateRole(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Role != models.RoleInstructor && req.Role != models.RoleStudent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be 'instructor' or 'student'"})
		return
	}

	ctx := c.Request.Context()
	if err := h.DB.Queries.UpdateUserRole(ctx, userID, req.Role); err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to update role", err)
		return
	}

	session := sessions.Default(c)
	if profile, ok := h.currentProfile(c); ok {
		profile.Role = string(req.Role)
		session.Set(ProfileSessionKey, profile)
		if err := session.Save(); err != nil {
			log.Printf("ERROR: Failed to refresh session after role change for user %s: %v", userID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"role": req.Role})
}
