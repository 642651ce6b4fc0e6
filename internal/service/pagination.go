package service

import (
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// pageOf validates an optional from/size pair. Either being absent means no paging.
func pageOf(from, size *int) (*models.Page, error) {
	if from == nil || size == nil {
		return nil, nil
	}
	if *from < 0 || *size <= 0 {
		return nil, fmt.Errorf("%w: incorrect page parameters from=%d size=%d", domain.ErrInvalidArgument, *from, *size)
	}
	return &models.Page{Offset: *from, Limit: *size}, nil
}
