package accessory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glintlab/glint/internal/discovery"
	"github.com/glintlab/glint/internal/logging"
)

// Identity is an opaque stable key for one physical bulb plus the
// handle of its previously registered accessory. The handle belongs to
// the host runtime; this package only compares keys.
type Identity struct {
	// Key is the deterministic UUID derived from the bulb id
	Key uuid.UUID

	// Handle is the host runtime's accessory handle (opaque here)
	Handle any
}

// ActionType is the reconciliation decision for one record
type ActionType int

const (
	// ActionCreate means the bulb was not previously known and a new
	// accessory should be registered
	ActionCreate ActionType = iota

	// ActionRestore means the bulb matches a known identity and the
	// existing accessory handle is reused, never re-created
	ActionRestore
)

// String returns a human-readable name for the action type
func (t ActionType) String() string {
	switch t {
	case ActionCreate:
		return "create"
	case ActionRestore:
		return "restore"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// Action pairs a reconciliation decision with its record. Identity is
// set only for ActionRestore.
type Action struct {
	Type     ActionType
	Record   *discovery.Record
	Identity *Identity
}

// KeyFor derives the stable identity key for a bulb id. The derivation
// is a one-way deterministic UUIDv5, so the same bulb yields the same
// key across discovery cycles and process restarts.
func KeyFor(id string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
}

// Reconcile matches freshly discovered records against previously known
// identities and decides create-vs-restore per record.
//
// Records are processed in the order supplied (discovery arrival
// order). A record without a usable id cannot be reconciled: it is
// skipped and never emitted, observable as fewer actions than input
// records. Pure decision logic; no I/O beyond an informational log for
// skipped records.
func Reconcile(records []*discovery.Record, known []*Identity) []Action {
	byKey := make(map[uuid.UUID]*Identity, len(known))
	for _, identity := range known {
		byKey[identity.Key] = identity
	}

	actions := make([]Action, 0, len(records))
	for _, record := range records {
		id := record.ID()
		if id == "" {
			logging.Info("Discovery reply without an id, dropping",
				zap.String("remote_addr", record.Addr),
				zap.String("model", record.Model()),
			)
			continue
		}

		if identity, ok := byKey[KeyFor(id)]; ok {
			// Current field values (e.g. an updated location) ride along
			// on the record so the host can refresh cached context
			actions = append(actions, Action{
				Type:     ActionRestore,
				Record:   record,
				Identity: identity,
			})
			continue
		}

		actions = append(actions, Action{
			Type:   ActionCreate,
			Record: record,
		})
	}

	return actions
}

// Registrar is the host-runtime boundary that owns accessory handles.
// The core drives it once per discovery cycle via Apply.
type Registrar interface {
	// RegisterNew allocates a new accessory for a newly discovered bulb.
	// The host derives the accessory UUID from KeyFor(record.ID()).
	RegisterNew(record *discovery.Record) (*Identity, error)

	// RestoreExisting re-attaches a previously registered accessory,
	// refreshing any cached context from the fresh record
	RestoreExisting(identity *Identity, record *discovery.Record) error
}

// Apply drives the registrar for each action and returns the identities
// now live. A failing registration is logged and skipped rather than
// aborting the cycle; the joined error reports every failure.
func Apply(actions []Action, registrar Registrar) ([]*Identity, error) {
	identities := make([]*Identity, 0, len(actions))
	var errs []error

	for _, action := range actions {
		switch action.Type {
		case ActionCreate:
			identity, err := registrar.RegisterNew(action.Record)
			if err != nil {
				logging.Warn("Failed to register bulb",
					zap.String("id", action.Record.ID()),
					zap.Error(err),
				)
				errs = append(errs, fmt.Errorf("register %s: %w", action.Record.ID(), err))
				continue
			}
			identities = append(identities, identity)

		case ActionRestore:
			if err := registrar.RestoreExisting(action.Identity, action.Record); err != nil {
				logging.Warn("Failed to restore bulb",
					zap.String("id", action.Record.ID()),
					zap.Error(err),
				)
				errs = append(errs, fmt.Errorf("restore %s: %w", action.Record.ID(), err))
				continue
			}
			identities = append(identities, action.Identity)
		}
	}

	return identities, errors.Join(errs...)
}
