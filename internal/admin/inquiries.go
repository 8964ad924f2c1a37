package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

// Inquiries lists submitted inquiries. The list is admin-only data, so an
// authentication failure is returned instead of falling back. Connectivity
// failures and other backend errors serve the local collection.
func (s *Service) Inquiries(ctx context.Context) ([]inquiry.Inquiry, datasource.Source, error) {
	const op = "list_inquiries"
	ctx, span := s.tel.Start(ctx, "admin."+op)
	defer span.End()

	if err := s.requireSession(); err != nil {
		return nil, "", err
	}

	if s.selector.Available(ctx) {
		err := s.ensureAuth(ctx)
		if err == nil {
			var list []inquiry.Inquiry
			list, err = s.remote.Inquiries.List(ctx)
			if err == nil {
				s.tel.Record(ctx, op, datasource.SourceRemote)
				return list, datasource.SourceRemote, nil
			}
			if remote.IsUnauthorized(err) {
				return nil, "", ErrNotAuthenticated
			}
		}
		if !remote.IsTransport(err) && !remote.IsRejection(err) {
			return nil, "", err
		}
		s.lg.Warn("Backend inquiry list failed, using local data", zap.Error(err))
	}

	list, err := s.local.Inquiries.List(ctx)
	if err != nil {
		return nil, "", err
	}
	s.tel.Record(ctx, op, datasource.SourceLocal)
	return list, datasource.SourceLocal, nil
}

// UpdateInquiryStatus moves an inquiry to status. Any known status may
// follow any other.
func (s *Service) UpdateInquiryStatus(ctx context.Context, id string, status inquiry.Status, notes string) (*inquiry.Inquiry, datasource.Source, error) {
	if err := inquiry.CanTransition("", status); err != nil {
		return nil, "", err
	}
	return write(ctx, s, "update_inquiry_status", id, []any{status, notes},
		func(ctx context.Context) (*inquiry.Inquiry, error) {
			return s.remote.Inquiries.UpdateStatus(ctx, id, status, notes)
		},
		func(ctx context.Context) (*inquiry.Inquiry, error) {
			return s.local.Inquiries.UpdateStatus(ctx, id, status, notes)
		},
	)
}

// DeleteInquiry removes an inquiry. Deletion is allowed from any status.
func (s *Service) DeleteInquiry(ctx context.Context, id string) (datasource.Source, error) {
	_, src, err := write(ctx, s, "delete_inquiry", id, nil,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.Inquiries.Delete(ctx, id)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Inquiries.Delete(ctx, id)
		},
	)
	return src, err
}
