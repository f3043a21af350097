package archive

import "fmt"

// ConfigurationError reports a missing credential or channel argument.
// Raised before any network activity.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ResolutionError reports a channel name that could not be mapped to an
// ID, either because no channel matched or the lookup itself failed.
type ResolutionError struct {
	Channel string
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("channel id not found for %q: %v", e.Channel, e.Err)
	}
	return fmt.Sprintf("channel id not found for %q", e.Channel)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// FetchError reports a failure while retrieving history pages. A failed
// page aborts the whole fetch; there is no partial-result mode.
type FetchError struct {
	ChannelID string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch history for channel %s: %v", e.ChannelID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IdentityLookupError records a failed profile lookup for one user.
// Non-fatal: the resolver falls back to the raw identifier and keeps going.
type IdentityLookupError struct {
	UserID string
	Err    error
}

func (e *IdentityLookupError) Error() string {
	return fmt.Sprintf("failed to resolve user %s: %v", e.UserID, e.Err)
}

func (e *IdentityLookupError) Unwrap() error { return e.Err }

// DataIntegrityError reports a message record with no determinable
// sender. Raw carries the offending record as JSON for diagnosis.
type DataIntegrityError struct {
	Raw string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("no user for this message:\n%s", e.Raw)
}

// PublishError reports an upload failure after rendering succeeded.
// Rendered files remain on disk.
type PublishError struct {
	Kind ArtifactKind
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish %s artifact: %v", e.Kind, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
