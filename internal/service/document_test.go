package service

import (
	"errors"
	"testing"

	crdberrors "github.com/cockroachdb/errors"
	"github.com/logiport/portal/internal/api/dto"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/testutil"
	"github.com/logiport/portal/internal/types"
	"github.com/stretchr/testify/suite"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

type DocumentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DocumentService
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewDocumentService(newTestServiceParams(&s.BaseServiceTestSuite, nil))
}

func uploadRequest(title string, data []byte) dto.UploadDocumentRequest {
	return dto.UploadDocumentRequest{
		Title:        title,
		DocumentType: types.DocumentTypeImport,
		Description:  "customs declaration",
		FileName:     "Declaration.PDF",
		Data:         data,
	}
}

func (s *DocumentServiceSuite) TestUploadDocument() {
	resp, err := s.service.UploadDocument(s.GetContext(), testutil.ClientActor, uploadRequest("Declaration", pdfBytes))
	s.Require().NoError(err)
	s.Equal("application/pdf", resp.ContentType)
	s.Equal(testutil.ClientActor.ID, resp.UploadedBy)
	s.Equal(testutil.ClientActor.ID+"/"+resp.ID+".pdf", resp.FileKey)
	s.NotEmpty(resp.DownloadURL)

	s.Equal(pdfBytes, s.GetS3().Data(resp.FileKey))
}

func (s *DocumentServiceSuite) TestUploadRejectsUnknownContent() {
	_, err := s.service.UploadDocument(s.GetContext(), testutil.ClientActor, uploadRequest("Notes", []byte("just some text")))
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Equal(0, s.GetS3().Len())
	s.Equal(0, s.GetStores().DocumentRepo.Len())
}

func (s *DocumentServiceSuite) TestUploadValidation() {
	req := uploadRequest("", pdfBytes)
	_, err := s.service.UploadDocument(s.GetContext(), testutil.ClientActor, req)
	s.True(ierr.IsValidation(err))

	req = uploadRequest("Declaration", pdfBytes)
	req.DocumentType = types.DocumentType("invoice")
	_, err = s.service.UploadDocument(s.GetContext(), testutil.ClientActor, req)
	s.True(ierr.IsValidation(err))
}

func (s *DocumentServiceSuite) TestUploadStorageFailure() {
	s.GetS3().FailUploads(errors.New("bucket unavailable"))

	_, err := s.service.UploadDocument(s.GetContext(), testutil.ClientActor, uploadRequest("Declaration", pdfBytes))
	s.Error(err)
	s.Equal(0, s.GetStores().DocumentRepo.Len())
}

func (s *DocumentServiceSuite) TestUploadWithoutStorage() {
	params := newTestServiceParams(&s.BaseServiceTestSuite, nil)
	params.S3 = nil
	svc := NewDocumentService(params)

	_, err := svc.UploadDocument(s.GetContext(), testutil.ClientActor, uploadRequest("Declaration", pdfBytes))
	s.Error(err)
	s.True(crdberrors.Is(err, ierr.ErrInvalidOperation))
}

func (s *DocumentServiceSuite) TestListDocuments() {
	for _, actor := range []types.Actor{testutil.ClientActor, testutil.ClientActor, testutil.OtherClientActor} {
		_, err := s.service.UploadDocument(s.GetContext(), actor, uploadRequest("Declaration", pdfBytes))
		s.Require().NoError(err)
	}

	own, err := s.service.ListDocuments(s.GetContext(), testutil.ClientActor, &types.DocumentFilter{
		UploadedBy: testutil.OtherClientActor.ID,
	})
	s.NoError(err)
	s.Equal(2, own.Pagination.Total)
	for _, doc := range own.Items {
		s.Equal(testutil.ClientActor.ID, doc.UploadedBy)
	}

	all, err := s.service.ListDocuments(s.GetContext(), testutil.AdminActor, nil)
	s.NoError(err)
	s.Equal(3, all.Pagination.Total)
}

func (s *DocumentServiceSuite) TestDeleteDocument() {
	doc, err := s.service.UploadDocument(s.GetContext(), testutil.ClientActor, uploadRequest("Declaration", pdfBytes))
	s.Require().NoError(err)

	testCases := []struct {
		name    string
		actor   types.Actor
		wantErr func(error) bool
	}{
		{name: "other_client_denied", actor: testutil.OtherClientActor, wantErr: ierr.IsPermissionDenied},
		{name: "owner_allowed", actor: testutil.ClientActor},
		{name: "already_deleted", actor: testutil.ClientActor, wantErr: ierr.IsNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.service.DeleteDocument(s.GetContext(), tc.actor, doc.ID)
			if tc.wantErr != nil {
				s.Error(err)
				s.True(tc.wantErr(err))
				return
			}
			s.NoError(err)
		})
	}

	s.False(s.GetS3().Has(doc.FileKey))
}

func (s *DocumentServiceSuite) TestStaffMayDeleteAnyDocument() {
	doc, err := s.service.UploadDocument(s.GetContext(), testutil.ClientActor, uploadRequest("Declaration", pdfBytes))
	s.Require().NoError(err)

	s.NoError(s.service.DeleteDocument(s.GetContext(), testutil.AdminActor, doc.ID))
	s.Equal(0, s.GetStores().DocumentRepo.Len())
}
