package hfinference

import (
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the HuggingFace inference router root.
	DefaultBaseURL = "https://router.huggingface.co/hf-inference/models"

	// DefaultImageModel is the image generation model used when the user
	// has not selected one.
	DefaultImageModel = "black-forest-labs/FLUX.1-schnell"

	// DefaultTTSModel is the text-to-speech model.
	DefaultTTSModel = "facebook/mms-tts-rus"

	// DefaultTimeout bounds a single inference request. Image models on
	// the free tier can take close to a minute when warming up.
	DefaultTimeout = 60 * time.Second
)

// Config holds HuggingFace inference client configuration.
type Config struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

// Validate validates the configuration and fills defaults.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("hfinference: Token is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

type inferRequest struct {
	Inputs string `json:"inputs"`
}
