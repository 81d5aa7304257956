package repositories

import (
	"barber-lab/domain"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// keySeparator cannot appear in an identity (see domain.Identity.Valid).
const keySeparator = "\x00"

// maxTimestamp is the highest 19 digits timestamp, used to seek from the end of a prefix.
const maxTimestamp = "9999999999999999999"

func conversationPrefix(key domain.ConversationKey) []byte {
	return []byte("msg:conv:" + string(key.Low) + keySeparator + string(key.High) + keySeparator)
}

func inboxPrefix(receiver domain.Identity) []byte {
	return []byte("msg:inbox:" + string(receiver) + keySeparator)
}

func appointmentPrefix(shop domain.Identity) []byte {
	return []byte("appt:" + string(shop) + keySeparator)
}

func profileKey(id domain.Identity) []byte {
	return []byte("profile:" + string(id))
}

// orderedKey appends a zero padded timestamp and the id to the prefix.
// The 19 digits padding keeps the lexicographical order chronological and
// the id keeps two documents written in the same nanosecond apart.
func orderedKey(prefix []byte, at time.Time, id uuid.UUID) []byte {
	suffix := fmt.Sprintf("%019d%s%s", at.UnixNano(), keySeparator, id)
	key := make([]byte, 0, len(prefix)+len(suffix))
	key = append(key, prefix...)
	return append(key, suffix...)
}

// scanPrefix collects the raw values stored under prefix.
// Reverse scans start from the newest key. A nil limit reads everything.
func scanPrefix(txn *badger.Txn, prefix []byte, reverse bool, limit *int) ([][]byte, error) {
	var values [][]byte
	options := badger.DefaultIteratorOptions
	options.Reverse = reverse
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	seekKey := prefix
	if reverse {
		seekKey = append(append([]byte{}, prefix...), []byte(maxTimestamp)...)
	}

	for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
		if limit != nil && len(values) == *limit {
			break
		}
		value, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
