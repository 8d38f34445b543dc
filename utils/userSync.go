package utils

import (
	"log"
	"time"

	"elms/config"
	"elms/models"

	"github.com/go-resty/resty/v2"
)

// NotifyUserRegistered pushes a newly registered user to the external system
// configured via USER_SYNC_URL. Callers run it in a goroutine; registration
// never fails because the sync did.
func NotifyUserRegistered(user models.User) {
	cfg := config.AppConfig
	if cfg.UserSyncURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"user_id":      user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"department":   user.Department,
			"position":     user.Position,
		}).
		Post(cfg.UserSyncURL)

	if err != nil {
		log.Printf("Error syncing user %s to external system: %v", user.Email, err)
		return
	}
	if resp.IsError() {
		log.Printf("External user sync failed for %s: %s", user.Email, resp.Status())
		return
	}

	log.Printf("User synced successfully to external system: %s", user.Email)
}
