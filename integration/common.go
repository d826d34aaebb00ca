//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/bulatminnakhmetov/collection-tracker/internal/handler/auth"
	"github.com/bulatminnakhmetov/collection-tracker/internal/handler/listing"
)

// AppURL returns the address of the service under test
func AppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080" // Default for local testing
	}
	return appURL
}

// UniqueEmail returns an owner email no other test run uses
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@example.com", prefix, os.Getpid(), time.Now().UnixNano())
}

// CreateListing creates a listing and returns it as stored
func CreateListing(appURL string, l listing.ListingDTO) (*listing.ListingDTO, error) {
	reqBody, _ := json.Marshal(l)

	resp, err := http.Post(appURL+"/addListing", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create listing failed with status %d: %s", resp.StatusCode, string(body))
	}

	var created listing.ListingDTO
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UploadMedia posts content as the media of a listing
func UploadMedia(appURL string, listingID int64, fileName string, content []byte) (*http.Response, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("media", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/media?id=%d", appURL, listingID), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return http.DefaultClient.Do(req)
}

// DeleteListing deletes a listing on behalf of ownerEmail
func DeleteListing(appURL string, id int64, ownerEmail string) (*http.Response, error) {
	url := fmt.Sprintf("%s/listings/%d?ownerEmail=%s", appURL, id, ownerEmail)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

// RegisterCollector registers a collector and returns the stored record
func RegisterCollector(appURL string, req auth.RegisterRequest) (*auth.CollectorDTO, error) {
	reqBody, _ := json.Marshal(req)

	resp, err := http.Post(appURL+"/addCollector", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registration failed with status %d: %s", resp.StatusCode, string(body))
	}

	var collector auth.CollectorDTO
	if err := json.NewDecoder(resp.Body).Decode(&collector); err != nil {
		return nil, err
	}
	return &collector, nil
}
