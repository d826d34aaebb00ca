//go:build integration

package media

import (
	"io"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bulatminnakhmetov/collection-tracker/integration"
	"github.com/bulatminnakhmetov/collection-tracker/internal/handler/listing"
)

// a 1x1 PNG
var testImage = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
	0x42, 0x60, 0x82,
}

// MediaIntegrationTestSuite covers upload, download and cascade against a running service
type MediaIntegrationTestSuite struct {
	suite.Suite
	appURL     string
	ownerEmail string
	listingID  int64
}

func (s *MediaIntegrationTestSuite) SetupSuite() {
	s.appURL = integration.AppURL()
	s.ownerEmail = integration.UniqueEmail("media_owner")
}

func (s *MediaIntegrationTestSuite) SetupTest() {
	created, err := integration.CreateListing(s.appURL, listing.ListingDTO{
		Title:      "Stamp album",
		Price:      15,
		OwnerEmail: s.ownerEmail,
	})
	s.Require().NoError(err)
	s.listingID = created.ID
}

func (s *MediaIntegrationTestSuite) download(path string) (*http.Response, []byte) {
	resp, err := http.Get(s.appURL + path)
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, body
}

func (s *MediaIntegrationTestSuite) TestUploadAndDownloadRoundTrip() {
	resp, err := integration.UploadMedia(s.appURL, s.listingID, "img.png", testImage)
	s.Require().NoError(err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("file uploaded successfully : img.png", string(body))

	got, data := s.download("/media/listing/" + strconv.FormatInt(s.listingID, 10))
	s.Equal(http.StatusOK, got.StatusCode)
	s.Equal("image/png", got.Header.Get("Content-Type"))
	s.Equal(testImage, data)
}

func (s *MediaIntegrationTestSuite) TestSecondUploadReplacesFirst() {
	first := []byte("first version of the scan")
	second := []byte("second version of the scan")

	resp, err := integration.UploadMedia(s.appURL, s.listingID, "first.txt", first)
	s.Require().NoError(err)
	resp.Body.Close()
	resp, err = integration.UploadMedia(s.appURL, s.listingID, "second.txt", second)
	s.Require().NoError(err)
	resp.Body.Close()

	got, data := s.download("/media/listing/" + strconv.FormatInt(s.listingID, 10))
	s.Equal(http.StatusOK, got.StatusCode)
	s.Equal(second, data)
}

func (s *MediaIntegrationTestSuite) TestDownloadUnknownName() {
	got, _ := s.download("/media/" + integration.UniqueEmail("missing") + ".png")
	s.Equal(http.StatusNotFound, got.StatusCode)
}

func (s *MediaIntegrationTestSuite) TestDeleteCascadesToMedia() {
	resp, err := integration.UploadMedia(s.appURL, s.listingID, "img.png", testImage)
	s.Require().NoError(err)
	resp.Body.Close()

	resp, err = integration.DeleteListing(s.appURL, s.listingID, s.ownerEmail)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)

	got, _ := s.download("/media/listing/" + strconv.FormatInt(s.listingID, 10))
	s.Equal(http.StatusNotFound, got.StatusCode)
}

func (s *MediaIntegrationTestSuite) TestUploadWithoutListingID() {
	resp, err := http.Post(s.appURL+"/media", "multipart/form-data", nil)
	s.Require().NoError(err)
	resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestMediaIntegration(t *testing.T) {
	suite.Run(t, new(MediaIntegrationTestSuite))
}
