package msgs

import (
	"encoding/json"

	"github.com/pfeiferj/gomsgq"
	"github.com/pkg/errors"
)

type Publisher[T any] struct {
	Pub gomsgq.MsgqPublisher
}

func (p *Publisher[T]) Send(obj *T) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return errors.Wrap(err, "could not marshal message")
	}
	p.Pub.Send(b)
	return nil
}

func NewPublisher[T any](name string) (publisher Publisher[T]) {
	msgq := gomsgq.Msgq{}
	err := msgq.Init(name, GetSegmentSize(name))
	if err != nil {
		panic(err)
	}
	pub := gomsgq.MsgqPublisher{}
	pub.Init(msgq)

	publisher.Pub = pub
	return publisher
}
