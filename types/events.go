package types

import (
	"encoding/json"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/crypto"
)

// CommittedList is an append-only list of events or actions together with
// its running hash: hash(empty) = H(Empty, []) and each push folds
// H(Item, element) onto it with the Cons tag.
type CommittedList struct {
	Data [][]common.Field
	Hash common.Field
}

func EmptyListHash(h crypto.Hasher, tags crypto.ListTags) common.Field {
	return h.HashWithDomainTag(tags.Empty, nil)
}

func NewCommittedList(h crypto.Hasher, tags crypto.ListTags) CommittedList {
	return CommittedList{Hash: EmptyListHash(h, tags)}
}

// Push appends one element and folds it into the hash.
func (l *CommittedList) Push(h crypto.Hasher, tags crypto.ListTags, element ...common.Field) {
	item := append([]common.Field(nil), element...)
	l.Data = append(l.Data, item)
	l.Hash = crypto.ConsHash(h, tags.Cons, l.Hash, h.HashWithDomainTag(tags.Item, item))
}

func (l CommittedList) IsEmpty() bool {
	return len(l.Data) == 0
}

// Rehash recomputes the hash from Data, used after decoding.
func (l *CommittedList) Rehash(h crypto.Hasher, tags crypto.ListTags) {
	data := l.Data
	*l = NewCommittedList(h, tags)
	for _, e := range data {
		l.Push(h, tags, e...)
	}
}

func (l CommittedList) Clone() CommittedList {
	c := CommittedList{Hash: l.Hash, Data: make([][]common.Field, len(l.Data))}
	for i, e := range l.Data {
		c.Data[i] = append([]common.Field(nil), e...)
	}
	return c
}

// Only the elements go on the wire; the hash is derived.
func (l CommittedList) MarshalJSON() ([]byte, error) {
	if l.Data == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Data)
}

func (l *CommittedList) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &l.Data)
}
