package speech

import (
	"strings"

	"google.golang.org/api/option"
)

// ClientOptions selects explicit credentials when configured. Inline JSON
// wins over a file path; with neither, the clients fall back to application
// default credentials.
func ClientOptions(credentialsJSON, credentialsFile string) []option.ClientOption {
	creds := strings.TrimSpace(credentialsJSON)
	if creds == "" {
		creds = strings.TrimSpace(credentialsFile)
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
