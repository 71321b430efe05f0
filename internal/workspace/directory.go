package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/roomaudit/roomaudit/internal/directory"
	"github.com/roomaudit/roomaudit/internal/google"
)

// DirectoryClient implements directory.Directory over the Admin SDK
// Directory API. User lookups resolve the enabled state from the
// suspension flag; addresses that are not users are matched against
// the customer's calendar resources so rooms and equipment classify as
// always-enabled non-human accounts.
type DirectoryClient struct {
	svc      *admin.Service
	customer string

	mu        sync.Mutex
	resources map[string]*admin.CalendarResource // by lowercased resource email, nil until loaded
}

// NewDirectoryClient builds a directory client acting as adminSubject,
// which must be allowed to read users and calendar resources.
// customerID is usually "my_customer".
func NewDirectoryClient(ctx context.Context, creds *google.Credentials, adminSubject, customerID string) (*DirectoryClient, error) {
	if customerID == "" {
		customerID = "my_customer"
	}
	client, err := creds.ClientForSubject(ctx, adminSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to impersonate directory admin %s: %w", adminSubject, err)
	}
	svc, err := admin.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create directory service: %w", err)
	}
	return &DirectoryClient{svc: svc, customer: customerID}, nil
}

// Lookup implements directory.Directory.
func (d *DirectoryClient) Lookup(ctx context.Context, address string) (directory.Entry, error) {
	addr := directory.Normalize(address)

	user, err := d.svc.Users.Get(addr).Fields("primaryEmail", "suspended").Context(ctx).Do()
	switch {
	case err == nil:
		enabled := !user.Suspended
		return directory.Entry{
			Address: strings.ToLower(user.PrimaryEmail),
			Type:    "user",
			Enabled: &enabled,
		}, nil
	case isNotFound(err):
		// Not a user; it may still be a room or equipment mailbox.
		return d.lookupResource(ctx, addr)
	default:
		return directory.Entry{}, fmt.Errorf("directory lookup %s: %w", addr, err)
	}
}

// lookupResource matches addr against the customer's calendar
// resources. The resource list is fetched once per client and reused.
func (d *DirectoryClient) lookupResource(ctx context.Context, addr string) (directory.Entry, error) {
	byEmail, err := d.resourceIndex(ctx)
	if err != nil {
		return directory.Entry{}, err
	}
	res, ok := byEmail[addr]
	if !ok {
		return directory.Entry{}, directory.ErrNotFound
	}
	enabled := true
	return directory.Entry{
		Address: strings.ToLower(res.ResourceEmail),
		Type:    resourceEntryType(res),
		Enabled: &enabled,
	}, nil
}

func (d *DirectoryClient) resourceIndex(ctx context.Context) (map[string]*admin.CalendarResource, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.resources != nil {
		return d.resources, nil
	}

	index := make(map[string]*admin.CalendarResource)
	pageToken := ""
	for {
		call := d.svc.Resources.Calendars.List(d.customer).MaxResults(500).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list calendar resources: %w", err)
		}
		for _, res := range page.Items {
			index[strings.ToLower(res.ResourceEmail)] = res
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	d.resources = index
	return index, nil
}

func resourceEntryType(res *admin.CalendarResource) string {
	switch strings.ToUpper(res.ResourceCategory) {
	case "CONFERENCE_ROOM":
		return "room"
	case "OTHER", "CATEGORY_UNKNOWN", "":
		if res.ResourceType != "" {
			return "equipment"
		}
		return "resource"
	default:
		return "resource"
	}
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 404
	}
	return false
}
