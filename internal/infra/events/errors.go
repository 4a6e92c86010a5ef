package events

import "errors"

var (
	// ErrConnect ошибка подключения к брокеру
	ErrConnect = errors.New("events.publisher: failed to connect to broker")

	// ErrMarshal ошибка сериализации события
	ErrMarshal = errors.New("events.publisher: failed to marshal event")

	// ErrPublish ошибка публикации события
	ErrPublish = errors.New("events.publisher: failed to publish event")
)
