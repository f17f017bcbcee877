package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"supplierfront/assets"
	"supplierfront/internal/apiclient"
	"supplierfront/internal/audit"
	"supplierfront/internal/blob"
	"supplierfront/internal/content"
	"supplierfront/internal/email"
	emailmocks "supplierfront/internal/email/mocks"
	"supplierfront/internal/frameworks/handler/mocks"
	"supplierfront/internal/platform/config"
	"supplierfront/internal/platform/metrics"
	"supplierfront/internal/session"
	"supplierfront/pkg/testutil"
)

type recordedAudit struct {
	events []audit.Event
}

func (a *recordedAudit) Emit(_ context.Context, event audit.Event) error {
	a.events = append(a.events, event)
	return nil
}

type FrameworksHandlerSuite struct {
	suite.Suite
	site   *testutil.Site
	api    *mocks.MockDataAPI
	mailer *emailmocks.MockSender
	audit  *recordedAudit

	communications *blob.MemoryStore
	agreements     *blob.MemoryStore
}

func TestFrameworksHandlerSuite(t *testing.T) {
	suite.Run(t, new(FrameworksHandlerSuite))
}

func (s *FrameworksHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.api = mocks.NewMockDataAPI(ctrl)
	s.mailer = emailmocks.NewMockSender(ctrl)
	s.audit = &recordedAudit{}
	s.communications = blob.NewMemory("communications")
	s.agreements = blob.NewMemory("agreements")

	loader := content.NewLoader(assets.Content())
	s.Require().NoError(loader.LoadManifest("g-cloud-7", "declaration", "declaration"))
	s.Require().NoError(loader.LoadManifest("g-cloud-7", "services", "edit_submission"))
	s.Require().NoError(loader.LoadMessages("g-cloud-7", "dates"))

	s.site = testutil.NewSite(s.T())
	s.site.Mount(New(s.api, loader, blob.Buckets{
		Agreements:     s.agreements,
		Communications: s.communications,
		Documents:      blob.NewMemory("documents"),
		Submissions:    blob.NewMemory("submissions"),
	}, s.site.Renderer, s.site.Sessions, s.mailer, s.audit, Settings{
		AssetsURL:                  "http://asset-host",
		ClarificationQuestionEmail: "clarifications@example.com",
		FollowUpEmailTo:            "follow-up@example.com",
		FrameworkAgreementsEmail:   "agreements@example.com",
		ClarificationEmail:         config.EmailSender{Name: "DM Admin", From: "do-not-reply@example.com", Subject: "Thanks for your clarification question"},
	}, s.site.Logger, metrics.New(prometheus.NewRegistry())))
	s.site.LoginAs(s.T(), testutil.SupplierUser())
}

func gcloud7(status string) *apiclient.Framework {
	return &apiclient.Framework{
		ID:                         4,
		Name:                       "G-Cloud 7",
		Slug:                       "g-cloud-7",
		Framework:                  "g-cloud",
		Status:                     status,
		ClarificationQuestionsOpen: status == apiclient.FrameworkOpen,
		Lots: []apiclient.Lot{
			{Slug: "SaaS", Name: "Software as a Service"},
			{Slug: "PaaS", Name: "Platform as a Service"},
			{Slug: "IaaS", Name: "Infrastructure as a Service"},
			{Slug: "SCS", Name: "Specialist Cloud Services", OneServiceLimit: true},
		},
	}
}

func notFound() error {
	return &apiclient.APIError{StatusCode: http.StatusNotFound}
}

func onFramework(declaration apiclient.Declaration) *apiclient.SupplierFramework {
	on := true
	return &apiclient.SupplierFramework{SupplierID: 1234, FrameworkSlug: "g-cloud-7", Declaration: declaration, OnFramework: &on}
}

func (s *FrameworksHandlerSuite) expectDashboardData(framework *apiclient.Framework, info *apiclient.SupplierFramework, infoErr error) {
	s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(framework, nil)
	s.api.EXPECT().FindDraftServices(gomock.Any(), int64(1234), "g-cloud-7").Return([]apiclient.Service{
		{"id": float64(1), "lot": "SaaS", "status": "submitted", "supplierId": float64(1234)},
		{"id": float64(2), "lot": "SaaS", "status": "not-submitted", "supplierId": float64(1234)},
	}, nil)
	s.api.EXPECT().GetSupplierFrameworkInfo(gomock.Any(), int64(1234), "g-cloud-7").Return(info, infoErr)
}

func (s *FrameworksHandlerSuite) TestRequiresLogin() {
	anonymous := testutil.NewSite(s.T())
	anonymous.Mount(New(s.api, content.NewLoader(assets.Content()), blob.Buckets{}, anonymous.Renderer, anonymous.Sessions, s.mailer, s.audit, Settings{}, anonymous.Logger, nil))
	testutil.AssertRedirect(s.T(), anonymous.Get("/frameworks/g-cloud-7"), "/login?next=%2Fframeworks%2Fg-cloud-7")
}

func (s *FrameworksHandlerSuite) TestDashboard() {
	s.Run("open framework with a declaration in progress", func() {
		s.expectDashboardData(gcloud7("open"), onFramework(apiclient.Declaration{"status": "started"}), nil)
		s.communications.PutAt("g-cloud-7/communications/g-cloud-7-supplier-pack.zip", []byte("zip"), time.Date(2015, 9, 1, 9, 0, 0, 0, time.UTC))

		rr := s.site.Get("/frameworks/g-cloud-7")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertBodyContains(s.T(), rr,
			"Your G-Cloud 7 application",
			"/frameworks/g-cloud-7/declaration/g-cloud-7-essentials",
			"1 draft service, 1 complete service",
			"/frameworks/g-cloud-7/files/g-cloud-7-supplier-pack.zip",
			"Last updated Tuesday 1 September 2015",
			"Tuesday 6 October 2015",
		)
	})

	s.Run("live framework the supplier never applied to", func() {
		s.expectDashboardData(gcloud7("live"), nil, notFound())
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7"), http.StatusNotFound)
	})

	s.Run("expired framework", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("expired"), nil)
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7"), http.StatusNotFound)
	})

	s.Run("shows the countersigned agreement", func() {
		s.expectDashboardData(gcloud7("live"), onFramework(apiclient.Declaration{"status": "complete"}), nil)
		s.agreements.PutAt("g-cloud-7/agreements/1234/1234-countersigned-framework-agreement.pdf", []byte("pdf"), time.Now())
		rr := s.site.Get("/frameworks/g-cloud-7")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertBodyContains(s.T(), rr, "/frameworks/g-cloud-7/agreements/countersigned-framework-agreement.pdf")
	})
}

func (s *FrameworksHandlerSuite) TestRegisterInterest() {
	s.Run("emails every active user", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().RegisterFrameworkInterest(gomock.Any(), int64(1234), "g-cloud-7", "email@email.com").Return(nil)
		s.api.EXPECT().FindUsers(gomock.Any(), int64(1234)).Return([]apiclient.User{
			{EmailAddress: "active@email.com", Active: true},
			{EmailAddress: "inactive@email.com", Active: false},
		}, nil)
		var sent email.Message
		s.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg email.Message) error {
			sent = msg
			return nil
		})
		s.api.EXPECT().FindDraftServices(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, nil)
		s.api.EXPECT().GetSupplierFrameworkInfo(gomock.Any(), int64(1234), "g-cloud-7").Return(onFramework(nil), nil)

		rr := s.site.PostForm("/frameworks/g-cloud-7", url.Values{})
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		assert.Equal(s.T(), []string{"active@email.com"}, sent.To)
		assert.Equal(s.T(), "You have started your G-Cloud 7 application", sent.Subject)
		assert.Equal(s.T(), []string{"g-cloud-7-application-started"}, sent.Tags)
		assert.Contains(s.T(), sent.HTML, "G-Cloud 7")
	})

	s.Run("email failure does not stop the page", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().RegisterFrameworkInterest(gomock.Any(), int64(1234), "g-cloud-7", "email@email.com").Return(nil)
		s.api.EXPECT().FindUsers(gomock.Any(), int64(1234)).Return([]apiclient.User{{EmailAddress: "active@email.com", Active: true}}, nil)
		s.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(&email.Error{Reason: "rejected"})
		s.api.EXPECT().FindDraftServices(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, nil)
		s.api.EXPECT().GetSupplierFrameworkInfo(gomock.Any(), int64(1234), "g-cloud-7").Return(onFramework(nil), nil)

		testutil.AssertStatus(s.T(), s.site.PostForm("/frameworks/g-cloud-7", url.Values{}), http.StatusOK)
	})
}

func (s *FrameworksHandlerSuite) TestSubmissionLots() {
	s.Run("lists every lot", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().FindDraftServices(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, nil)
		s.api.EXPECT().GetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, notFound())

		rr := s.site.Get("/frameworks/g-cloud-7/submissions")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertBodyContains(s.T(), rr,
			"Software as a Service",
			"Specialist Cloud Services",
			"/frameworks/g-cloud-7/submissions/IaaS",
		)
	})

	s.Run("pending framework without an application", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("pending"), nil)
		s.api.EXPECT().FindDraftServices(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, nil)
		s.api.EXPECT().GetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7").Return(apiclient.Declaration{"status": "complete"}, nil)
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/submissions"), http.StatusNotFound)
	})
}

func (s *FrameworksHandlerSuite) TestSubmissionServices() {
	s.Run("lists drafts with their progress", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().FindDraftServices(gomock.Any(), int64(1234), "g-cloud-7").Return([]apiclient.Service{
			{"id": float64(7), "lot": "SaaS", "status": "not-submitted", "serviceName": "My SaaS", "priceMin": "10", "priceUnit": "Unit"},
			{"id": float64(8), "lot": "PaaS", "status": "not-submitted", "serviceName": "Other lot"},
		}, nil)
		s.api.EXPECT().GetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7").Return(apiclient.Declaration{"status": "complete"}, nil)

		rr := s.site.Get("/frameworks/g-cloud-7/submissions/SaaS")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertBodyContains(s.T(), rr, "My SaaS", "/frameworks/g-cloud-7/submissions/SaaS/7", "unanswered")
		assert.NotContains(s.T(), rr.Body.String(), "Other lot")
	})

	s.Run("one service lots go straight to the service", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().FindDraftServices(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, nil)
		s.api.EXPECT().GetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, notFound())
		s.api.EXPECT().CreateNewDraftService(gomock.Any(), "g-cloud-7", "SCS", int64(1234), map[string]any{}, "email@email.com").
			Return(apiclient.Service{"id": float64(99), "lot": "SCS"}, nil)

		testutil.AssertRedirect(s.T(), s.site.Get("/frameworks/g-cloud-7/submissions/SCS"), "/frameworks/g-cloud-7/submissions/SCS/99")
	})

	s.Run("unknown lot", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/submissions/nope"), http.StatusNotFound)
	})
}

func completeDeclarationExceptLastPage() apiclient.Declaration {
	return apiclient.Declaration{
		"status":    "started",
		"PR1":       true,
		"PR2":       true,
		"PR3":       true,
		"PR4":       true,
		"SQ1-1a":    "Supplier Name",
		"SQ1-1c":    "1 Street, Town",
		"SQ1-1d":    "AB123456",
		"SQ1-1i":    "limited company",
		"SQ2-1abcd": false,
		"SQ2-2a":    false,
		"SQ2-2b":    false,
	}
}

func (s *FrameworksHandlerSuite) TestDeclaration() {
	s.Run("starts at the first editable section", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		testutil.AssertRedirect(s.T(), s.site.Get("/frameworks/g-cloud-7/declaration"), "/frameworks/g-cloud-7/declaration/g-cloud-7-essentials")
	})

	s.Run("only while the framework is open", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("pending"), nil)
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/declaration/about-you"), http.StatusNotFound)
	})

	s.Run("unknown section", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/declaration/nope"), http.StatusNotFound)
	})

	s.Run("shows saved answers", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().GetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7").Return(completeDeclarationExceptLastPage(), nil)
		rr := s.site.Get("/frameworks/g-cloud-7/declaration/about-you")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertBodyContains(s.T(), rr, `value="AB123456"`, "Save and continue")
	})

	s.Run("missing answers are not saved", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().GetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, notFound())
		rr := s.site.PostForm("/frameworks/g-cloud-7/declaration/g-cloud-7-essentials", url.Values{"PR2": {"true"}})
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertBodyContains(s.T(), rr, "You must answer this question.", "You need to answer this question.")
	})

	s.Run("a valid page is saved and moves on", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().GetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, notFound())
		s.api.EXPECT().SetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7", apiclient.Declaration{
			"status": "started",
			"PR1":    true,
			"PR2":    true,
			"PR3":    false,
			"PR4":    true,
		}, "email@email.com").Return(nil)

		rr := s.site.PostForm("/frameworks/g-cloud-7/declaration/g-cloud-7-essentials", url.Values{
			"PR1": {"true"}, "PR2": {"true"}, "PR3": {"false"}, "PR4": {"true"},
		})
		testutil.AssertRedirect(s.T(), rr, "/frameworks/g-cloud-7/declaration/about-you")
	})

	s.Run("the last page completes the declaration", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.api.EXPECT().GetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7").Return(completeDeclarationExceptLastPage(), nil)
		s.api.EXPECT().SetSupplierDeclaration(gomock.Any(), int64(1234), "g-cloud-7", gomock.Any(), "email@email.com").
			DoAndReturn(func(_ context.Context, _ int64, _ string, d apiclient.Declaration, _ string) error {
				assert.Equal(s.T(), "complete", d["status"])
				assert.Equal(s.T(), "We deliver", d["SQ3-1a"])
				return nil
			})

		rr := s.site.PostForm("/frameworks/g-cloud-7/declaration/how-you-ll-deliver-your-services", url.Values{"SQ3-1a": {" We deliver "}})
		testutil.AssertRedirect(s.T(), rr, "/frameworks/g-cloud-7")
		assert.Equal(s.T(), []session.Flash{{
			Category: "declaration_complete",
			Message:  "/frameworks/g-cloud-7/declaration_complete",
		}}, s.site.Flashes(s.T()))
	})
}

func (s *FrameworksHandlerSuite) TestDownloads() {
	s.communications.PutAt("g-cloud-7/communications/updates/communications/notice.pdf", []byte("pdf"), time.Now())

	s.Run("supplier files redirect through the assets host", func() {
		rr := s.site.Get("/frameworks/g-cloud-7/files/updates/communications/notice.pdf")
		assert.Equal(s.T(), http.StatusFound, rr.Code)
		assert.True(s.T(), strings.HasPrefix(rr.Header().Get("Location"),
			"http://asset-host/g-cloud-7/communications/updates/communications/notice.pdf?"), rr.Header().Get("Location"))
	})

	s.Run("missing supplier file", func() {
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/files/missing.pdf"), http.StatusNotFound)
	})

	s.Run("agreement documents need a declaration", func() {
		s.api.EXPECT().GetSupplierFrameworkInfo(gomock.Any(), int64(1234), "g-cloud-7").Return(nil, notFound())
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/agreements/result-letter.pdf"), http.StatusNotFound)
	})

	s.Run("agreement documents", func() {
		s.agreements.PutAt("g-cloud-7/agreements/1234/1234-result-letter.pdf", []byte("pdf"), time.Now())
		s.api.EXPECT().GetSupplierFrameworkInfo(gomock.Any(), int64(1234), "g-cloud-7").Return(onFramework(apiclient.Declaration{"status": "complete"}), nil)
		rr := s.site.Get("/frameworks/g-cloud-7/agreements/result-letter.pdf")
		assert.Equal(s.T(), http.StatusFound, rr.Code)
		assert.True(s.T(), strings.HasPrefix(rr.Header().Get("Location"), "http://asset-host/g-cloud-7/agreements/1234/1234-result-letter.pdf?"))
	})
}

func (s *FrameworksHandlerSuite) TestLegacyDownloads() {
	rr := s.site.Get("/frameworks/g-cloud-7/g-cloud-7-supplier-pack.zip")
	assert.Equal(s.T(), http.StatusMovedPermanently, rr.Code)
	assert.Equal(s.T(), "/frameworks/g-cloud-7/files/g-cloud-7-supplier-pack.zip", rr.Header().Get("Location"))

	rr = s.site.Get("/frameworks/g-cloud-7/updates/communications/notice.pdf")
	assert.Equal(s.T(), "/frameworks/g-cloud-7/files/updates/communications/notice.pdf", rr.Header().Get("Location"))

	testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/something.txt"), http.StatusNotFound)
	testutil.AssertStatus(s.T(), s.site.Get("/frameworks/digital-outcomes-and-specialists/pack.zip"), http.StatusNotFound)
}

func (s *FrameworksHandlerSuite) TestUpdates() {
	s.communications.PutAt("g-cloud-7/communications/updates/communications/2015-09-01-notice.pdf", []byte("pdf"), time.Date(2015, 9, 1, 9, 0, 0, 0, time.UTC))
	s.communications.PutAt("g-cloud-7/communications/updates/clarifications/answers.pdf", []byte("pdf"), time.Date(2015, 9, 2, 9, 0, 0, 0, time.UTC))
	s.communications.PutAt("g-cloud-7/communications/updates/other/dropped.pdf", []byte("pdf"), time.Date(2015, 9, 3, 9, 0, 0, 0, time.UTC))

	s.Run("lists communications and clarifications", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		rr := s.site.Get("/frameworks/g-cloud-7/updates")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertBodyContains(s.T(), rr,
			"/frameworks/g-cloud-7/files/updates/communications/2015-09-01-notice.pdf",
			"/frameworks/g-cloud-7/files/updates/clarifications/answers.pdf",
			"Ask a clarification question",
		)
		assert.NotContains(s.T(), rr.Body.String(), "dropped.pdf")
	})

	s.Run("empty question", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		rr := s.site.PostForm("/frameworks/g-cloud-7/updates", url.Values{"clarification_question": {"   "}})
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertBodyContains(s.T(), rr, "Question cannot be empty")
	})

	s.Run("question too long", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		rr := s.site.PostForm("/frameworks/g-cloud-7/updates", url.Values{"clarification_question": {strings.Repeat("a", 5001)}})
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertBodyContains(s.T(), rr, "Question cannot be longer than 5000 characters")
	})

	s.Run("clarification question is sent and confirmed", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		var sent []email.Message
		s.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(func(_ context.Context, msg email.Message) error {
			sent = append(sent, msg)
			return nil
		})

		rr := s.site.PostForm("/frameworks/g-cloud-7/updates", url.Values{"clarification_question": {"  What is the answer?  "}})
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertBodyContains(s.T(), rr, "Your clarification question has been sent.")

		require.Len(s.T(), sent, 2)
		assert.Equal(s.T(), []string{"clarifications@example.com"}, sent[0].To)
		assert.Equal(s.T(), "suppliers+g-cloud-7@digitalmarketplace.service.gov.uk", sent[0].FromEmail)
		assert.Equal(s.T(), []string{"clarification-question"}, sent[0].Tags)
		assert.Contains(s.T(), sent[0].HTML, "What is the answer?")
		assert.Equal(s.T(), []string{"email@email.com"}, sent[1].To)

		require.Len(s.T(), s.audit.events, 1)
		assert.Equal(s.T(), audit.TypeSendClarificationQuestion, s.audit.events[0].Type)
		assert.Equal(s.T(), "What is the answer?", s.audit.events[0].Data["question"])
	})

	s.Run("after the deadline questions go to the follow up inbox", func() {
		s.audit.events = nil
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("pending"), nil)
		var sent email.Message
		s.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg email.Message) error {
			sent = msg
			return nil
		})

		rr := s.site.PostForm("/frameworks/g-cloud-7/updates", url.Values{"clarification_question": {"Follow up"}})
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		assert.Equal(s.T(), []string{"follow-up@example.com"}, sent.To)
		assert.Equal(s.T(), "email@email.com", sent.FromEmail)
		require.Len(s.T(), s.audit.events, 1)
		assert.Equal(s.T(), audit.TypeSendApplicationQuestion, s.audit.events[0].Type)
	})

	s.Run("send failure", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		s.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("down"))
		rr := s.site.PostForm("/frameworks/g-cloud-7/updates", url.Values{"clarification_question": {"Question"}})
		testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
	})
}

func newUploadRequest(s *FrameworksHandlerSuite, filename string, data []byte) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("agreement", filename)
	s.Require().NoError(err)
	_, err = part.Write(data)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/frameworks/g-cloud-7/agreement", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (s *FrameworksHandlerSuite) TestAgreement() {
	expectContext := func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("standstill"), nil)
		info := onFramework(apiclient.Declaration{"status": "complete"})
		info.AgreementReturned = true
		info.AgreementReturnedAt = "2015-11-02T15:25:56.000000Z"
		s.api.EXPECT().GetSupplierFrameworkInfo(gomock.Any(), int64(1234), "g-cloud-7").Return(info, nil)
	}

	s.Run("open frameworks have no agreement", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("open"), nil)
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/agreement"), http.StatusNotFound)
	})

	s.Run("suppliers not on the framework", func() {
		s.api.EXPECT().GetFramework(gomock.Any(), "g-cloud-7").Return(gcloud7("standstill"), nil)
		s.api.EXPECT().GetSupplierFrameworkInfo(gomock.Any(), int64(1234), "g-cloud-7").Return(&apiclient.SupplierFramework{}, nil)
		testutil.AssertStatus(s.T(), s.site.Get("/frameworks/g-cloud-7/agreement"), http.StatusNotFound)
	})

	s.Run("shows when the agreement was returned", func() {
		expectContext()
		rr := s.site.Get("/frameworks/g-cloud-7/agreement")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertBodyContains(s.T(), rr, "Monday 2 November 2015 at 15:25")
	})

	s.Run("empty upload", func() {
		expectContext()
		rr := s.site.Do(newUploadRequest(s, "agreement.pdf", nil))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertBodyContains(s.T(), rr, "Document must not be empty")
	})

	s.Run("upload over 5MB", func() {
		expectContext()
		rr := s.site.Do(newUploadRequest(s, "agreement.pdf", bytes.Repeat([]byte("a"), 5400001)))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertBodyContains(s.T(), rr, "Document must be less than 5Mb")
	})

	s.Run("request body over the cap is cut off before parsing", func() {
		expectContext()
		rr := s.site.Do(newUploadRequest(s, "agreement.pdf", bytes.Repeat([]byte("a"), 7<<20)))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertBodyContains(s.T(), rr, "Document must be less than 5Mb")
		_, _, stored := s.agreements.Object("g-cloud-7/agreements/1234/1234-signed-framework-agreement.pdf")
		assert.False(s.T(), stored)
	})

	s.Run("stores the agreement and emails the team", func() {
		expectContext()
		s.api.EXPECT().RegisterFrameworkAgreementReturned(gomock.Any(), int64(1234), "g-cloud-7", "email@email.com").Return(nil)
		var sent email.Message
		s.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg email.Message) error {
			sent = msg
			return nil
		})

		rr := s.site.Do(newUploadRequest(s, "Signed.PDF", []byte("signed")))
		testutil.AssertRedirect(s.T(), rr, "/frameworks/g-cloud-7/agreement")

		data, opts, ok := s.agreements.Object("g-cloud-7/agreements/1234/1234-signed-framework-agreement.pdf")
		require.True(s.T(), ok)
		assert.Equal(s.T(), []byte("signed"), data)
		assert.Equal(s.T(), blob.ACLPrivate, opts.ACL)
		assert.Equal(s.T(), "Supplier_Năme-1234-signed-framework-agreement.pdf", opts.DownloadFilename)
		assert.Equal(s.T(), []string{"agreements@example.com"}, sent.To)
		assert.Equal(s.T(), []string{"g-cloud-7-framework-agreement"}, sent.Tags)
	})

	s.Run("email failure after upload", func() {
		expectContext()
		s.api.EXPECT().RegisterFrameworkAgreementReturned(gomock.Any(), int64(1234), "g-cloud-7", "email@email.com").Return(nil)
		s.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("down"))
		rr := s.site.Do(newUploadRequest(s, "signed.pdf", []byte("signed")))
		testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
	})
}
