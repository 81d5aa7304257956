//go:generate go run go.uber.org/mock/mockgen -source=profile.go -destination=../mocks/mock_profile_repository.go -package=mocks
package repositories

import (
	"barber-lab/codec"
	"barber-lab/domain"
	"barber-lab/errors"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type IProfileRepository interface {
	SaveProfile(profile domain.Profile) error
	GetProfile(id domain.Identity) (domain.Profile, error)
	GetProfiles(ids []domain.Identity) (map[domain.Identity]domain.Profile, error)
}

type ProfileRepository struct {
	db *badger.DB
}

func NewProfileRepository(db *badger.DB) IProfileRepository {
	return &ProfileRepository{db: db}
}

type diskProfile struct {
	ID           string `cbor:"id"`
	Kind         string `cbor:"kind"`
	BusinessName string `cbor:"business_name,omitempty"`
	FirstName    string `cbor:"first_name,omitempty"`
	LastName     string `cbor:"last_name,omitempty"`
	Location     string `cbor:"location,omitempty"`
	PhoneNumber  string `cbor:"phone_number,omitempty"`
	Email        string `cbor:"email,omitempty"`
	Bio          string `cbor:"bio,omitempty"`
}

// SaveProfile overwrites the profile stored under "profile:{id}".
func (p ProfileRepository) SaveProfile(profile domain.Profile) error {
	if !profile.ID.Valid() {
		return errors.ErrInvalidIdentity
	}
	data, err := codec.Marshal(fromProfile(profile))
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(profile.ID), data)
	})
}

func (p ProfileRepository) GetProfile(id domain.Identity) (domain.Profile, error) {
	profiles, err := p.GetProfiles([]domain.Identity{id})
	if err != nil {
		return domain.Profile{}, err
	}
	profile, ok := profiles[id]
	if !ok {
		return domain.Profile{}, errors.ErrProfileNotFound
	}
	return profile, nil
}

// GetProfiles resolves several identities within one read transaction.
// Unknown identities are absent from the result.
func (p ProfileRepository) GetProfiles(ids []domain.Identity) (map[domain.Identity]domain.Profile, error) {
	profiles := make(map[domain.Identity]domain.Profile, len(ids))
	err := p.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			item, err := txn.Get(profileKey(id))
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var dp diskProfile
			if err = item.Value(func(val []byte) error {
				return codec.Unmarshal(val, &dp)
			}); err != nil {
				return err
			}
			profiles[id] = toProfile(dp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func fromProfile(profile domain.Profile) diskProfile {
	return diskProfile{
		ID:           string(profile.ID),
		Kind:         string(profile.Kind),
		BusinessName: profile.BusinessName,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Location:     profile.Location,
		PhoneNumber:  profile.PhoneNumber,
		Email:        profile.Email,
		Bio:          profile.Bio,
	}
}

func toProfile(dp diskProfile) domain.Profile {
	return domain.Profile{
		ID:           domain.Identity(dp.ID),
		Kind:         domain.ProfileKind(dp.Kind),
		BusinessName: dp.BusinessName,
		FirstName:    dp.FirstName,
		LastName:     dp.LastName,
		Location:     dp.Location,
		PhoneNumber:  dp.PhoneNumber,
		Email:        dp.Email,
		Bio:          dp.Bio,
	}
}

// DecodeProfile reads a raw "profile:" value, for inspection tools.
func DecodeProfile(val []byte) (domain.Profile, error) {
	var dp diskProfile
	if err := codec.Unmarshal(val, &dp); err != nil {
		return domain.Profile{}, err
	}
	return toProfile(dp), nil
}
