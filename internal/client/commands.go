package client

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Commands renders client calls for the command line.
type Commands struct {
	client *Client
}

// NewCommands creates a Commands instance over client.
func NewCommands(client *Client) *Commands {
	return &Commands{client: client}
}

// Shorten creates a short link and prints it.
func (c *Commands) Shorten(ctx context.Context, targetURL, alias string, expiresIn time.Duration) error {
	params := CreateParams{
		TargetURL:   targetURL,
		CustomAlias: alias,
	}
	if expiresIn > 0 {
		expiresAt := time.Now().Add(expiresIn)
		params.ExpiresAt = &expiresAt
	}

	link, err := c.client.CreateLink(ctx, params)
	if err != nil {
		return err
	}

	fmt.Printf("Short URL: %s\n", link.ShortURL)
	fmt.Printf("Code:      %s\n", link.Code)
	fmt.Printf("Target:    %s\n", link.TargetURL)
	fmt.Printf("Expires:   %s\n", formatExpiry(link.ExpiresAt))

	return nil
}

// Get prints the stored details of one link.
func (c *Commands) Get(ctx context.Context, code string) error {
	link, err := c.client.GetLink(ctx, code)
	if errors.Is(err, ErrNotFound) {
		fmt.Printf("Code %q not found\n", code)
		return nil
	}
	if err != nil {
		return err
	}

	status := "active"
	if !link.Active {
		status = "deactivated"
	}

	fmt.Printf("Code:      %s\n", link.Code)
	fmt.Printf("Short URL: %s\n", link.ShortURL)
	fmt.Printf("Target:    %s\n", link.TargetURL)
	fmt.Printf("Created:   %s\n", link.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Expires:   %s\n", formatExpiry(link.ExpiresAt))
	fmt.Printf("Status:    %s\n", status)
	fmt.Printf("Clicks:    %d\n", link.ClickCount)

	return nil
}

// Delete deactivates a link and confirms.
func (c *Commands) Delete(ctx context.Context, code string) error {
	err := c.client.DeleteLink(ctx, code)
	if errors.Is(err, ErrNotFound) {
		fmt.Printf("Code %q not found\n", code)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Link %q deactivated\n", code)

	return nil
}

// Stats prints aggregated click statistics for a link.
func (c *Commands) Stats(ctx context.Context, code string) error {
	stats, err := c.client.Stats(ctx, code)
	if errors.Is(err, ErrNotFound) {
		fmt.Printf("Code %q not found\n", code)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Code:         %s\n", stats.Code)
	fmt.Printf("Total clicks: %d\n", stats.TotalClicks)

	if stats.LastClickAt != nil {
		fmt.Printf("Last click:   %s\n", stats.LastClickAt.Format(time.RFC3339))
	} else {
		fmt.Printf("Last click:   never\n")
	}

	if len(stats.Daily) > 0 {
		fmt.Println()
		for _, day := range stats.Daily {
			fmt.Printf("%s  %d\n", day.Date, day.Clicks)
		}
	}

	return nil
}

func formatExpiry(expiresAt *time.Time) string {
	if expiresAt == nil {
		return "never"
	}

	return expiresAt.Format(time.RFC3339)
}
