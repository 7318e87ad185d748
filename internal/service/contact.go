package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

type ContactStore interface {
	SaveContact(ctx context.Context, c *model.Contact) error
	ListContacts(ctx context.Context) ([]model.Contact, error)
	CountContacts(ctx context.Context) (int, error)
}

type ContactService struct {
	store ContactStore
}

func NewContactService(store ContactStore) *ContactService {
	return &ContactService{store: store}
}

func (s *ContactService) List(ctx context.Context) ([]model.Contact, error) {
	return s.store.ListContacts(ctx)
}

func (s *ContactService) Count(ctx context.Context) (int, error) {
	return s.store.CountContacts(ctx)
}

// ExportCSV streams the remarketing contact list. Generated on demand, never
// stored server-side.
func (s *ContactService) ExportCSV(ctx context.Context, w io.Writer) error {
	contacts, err := s.store.ListContacts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Nome", "Email", "WhatsApp", "Data de Cadastro"}); err != nil {
		return err
	}
	for _, c := range contacts {
		record := []string{c.Name, c.Email, c.Whatsapp, c.CreatedAt.Format("2006-01-02")}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
