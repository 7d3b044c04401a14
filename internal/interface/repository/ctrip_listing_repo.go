package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"
	"schedule-crawler/internal/infrastructure/httpclient"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// listingSelector matches the destination anchors; the class must be exactly "m"
const listingSelector = `div[class="m"] > a`

// CtripListingRepository reads a city's destination listing page
type CtripListingRepository struct {
	client  *httpclient.Client
	baseURL string
}

// NewCtripListingRepository creates a listing repository on the given session
func NewCtripListingRepository(client *httpclient.Client, baseURL string) repository.ListingRepository {
	return &CtripListingRepository{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ListingURL returns the listing page address for origin
func ListingURL(baseURL string, origin entity.CityCode) string {
	return fmt.Sprintf("%s/schedule/%s..html", strings.TrimRight(baseURL, "/"), entity.NormalizeCityCode(string(origin)))
}

// Destinations fetches and parses the listing page of origin
func (r *CtripListingRepository) Destinations(ctx context.Context, origin entity.CityCode) ([]entity.Destination, error) {
	body, err := r.client.Get(ctx, ListingURL(r.baseURL, origin))
	if err != nil {
		return nil, err
	}

	return ParseListing(bytes.NewReader(body))
}

// ParseListing extracts the destinations of a listing page: every <a> that is
// a direct child of <div class="m">, with its text as name and href as link.
// Anchors missing either are skipped.
func ParseListing(r io.Reader) ([]entity.Destination, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse listing HTML: %v", entity.ErrParse, err)
	}

	var destinations []entity.Destination
	doc.Find(listingSelector).Each(func(_ int, a *goquery.Selection) {
		name := ownText(a)
		link, _ := a.Attr("href")
		if name == "" || link == "" {
			return
		}

		destinations = append(destinations, entity.Destination{Name: name, Link: link})
	})

	return destinations, nil
}

// ownText concatenates the direct text children of s
func ownText(s *goquery.Selection) string {
	var sb strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if c.Nodes[0].Type == html.TextNode {
			sb.WriteString(c.Nodes[0].Data)
		}
	})
	return strings.TrimSpace(sb.String())
}
