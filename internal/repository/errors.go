package repository

import "errors"

var (
	ErrNotFound = errors.New("запись не найдена")
	ErrHasTasks = errors.New("категория используется задачами")
)
