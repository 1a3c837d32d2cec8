package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/tupyy/property-search-agent/api/v1"
	"github.com/tupyy/property-search-agent/internal/handlers"
	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/services"
	"github.com/tupyy/property-search-agent/internal/store"
	"github.com/tupyy/property-search-agent/internal/store/migrations"
)

var _ = Describe("Handlers", func() {
	var (
		ctx    context.Context
		db     *sql.DB
		srv    *services.PropertyService
		router *gin.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		srv = services.NewPropertyService(store.NewStore(db), services.SandboxProber{})
		Expect(srv.ImportProperties(ctx, []models.PropertyRecord{
			{ID: "p1", MunicipalityCode: "66023", Matricule: "9739-27-0001", CivicNumber: "1200", StreetName: "Rue Sherbrooke Ouest", AssessedValue: 950000},
			{ID: "p2", Collection: "heritage", CivicNumber: "10", StreetName: "Rue du Trésor"},
		})).To(Succeed())

		router = gin.New()
		v1.RegisterHandlers(router.Group("/api/v1"), handlers.New(srv))
	})

	AfterEach(func() {
		if db != nil {
			_ = db.Close()
		}
	})

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(data)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, "/api/v1"+path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeError := func(w *httptest.ResponseRecorder) v1.Error {
		var e v1.Error
		Expect(json.Unmarshal(w.Body.Bytes(), &e)).To(Succeed())
		return e
	}

	configure := func() {
		w := do(http.MethodPut, "/configuration", v1.Configuration{
			ApiKey: "secret-key", MunicipalityCodes: []string{"66023"}, IsActive: true,
		})
		ExpectWithOffset(1, w.Code).To(Equal(http.StatusOK))
	}

	Describe("configuration", func() {
		It("should report not configured before saving", func() {
			w := do(http.MethodGet, "/configuration/status", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"configured": false}`))
		})

		It("should return 404 when nothing is saved", func() {
			w := do(http.MethodGet, "/configuration", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should save and return the configuration with a masked key", func() {
			configure()

			w := do(http.MethodGet, "/configuration", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var cfg v1.Configuration
			Expect(json.Unmarshal(w.Body.Bytes(), &cfg)).To(Succeed())
			Expect(cfg.ApiKey).To(Equal("******-key"))
			Expect(cfg.MunicipalityCodes).To(Equal([]string{"66023"}))
			Expect(cfg.IsActive).To(BeTrue())

			w = do(http.MethodGet, "/configuration/status", nil)
			Expect(w.Body.String()).To(MatchJSON(`{"configured": true}`))
		})

		It("should reject an invalid configuration with the validation message", func() {
			w := do(http.MethodPut, "/configuration", v1.Configuration{
				ApiKey: "k", MunicipalityCodes: []string{"12a"}, IsActive: true,
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			e := decodeError(w)
			Expect(e.Error).To(Equal("validation_error"))
			Expect(e.Message).To(ContainSubstring(`"12a"`))
		})

		It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/configuration", bytes.NewBufferString("{"))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("connection test", func() {
		It("should report a connected sandbox key", func() {
			w := do(http.MethodPost, "/configuration/test", v1.ConnectionTestRequest{ApiKey: "test-key"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"connected": true}`))
		})

		It("should report a refused key", func() {
			w := do(http.MethodPost, "/configuration/test", v1.ConnectionTestRequest{ApiKey: "other"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"connected": false}`))
		})

		It("should reject an empty key", func() {
			w := do(http.MethodPost, "/configuration/test", v1.ConnectionTestRequest{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(w).Message).To(Equal("API key required"))
		})
	})

	Describe("reference data", func() {
		It("should fail to list municipalities when not configured", func() {
			w := do(http.MethodGet, "/municipalities", nil)
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(decodeError(w).Error).To(Equal("not_configured"))
		})

		It("should list the authorized municipalities", func() {
			configure()

			w := do(http.MethodGet, "/municipalities", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[{"value": "66023", "label": "Montréal"}]`))
		})

		It("should list the collections", func() {
			w := do(http.MethodGet, "/collections", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[{"value": "heritage", "label": "heritage"}]`))
		})
	})

	Describe("search", func() {
		BeforeEach(func() {
			configure()
		})

		It("should return the matching properties", func() {
			w := do(http.MethodPost, "/properties/search", v1.SearchRequest{
				SearchType: v1.SearchRequestSearchTypeMatricule, Municipality: "66023", Matricule: "9739-27-0001",
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp v1.SearchResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Total).To(Equal(1))
			Expect(resp.Properties[0].Id).To(Equal("p1"))
			Expect(resp.Properties[0].MunicipalityName).To(Equal("Montréal"))
			Expect(resp.Properties[0].AssessedValue).To(Equal(int64(950000)))
		})

		It("should return an empty list when nothing matches", func() {
			w := do(http.MethodPost, "/properties/search", v1.SearchRequest{
				SearchType: v1.SearchRequestSearchTypeLot, Municipality: "66023", LotNumber: "0",
			})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"properties": [], "total": 0}`))
		})

		It("should forbid an unauthorized municipality", func() {
			w := do(http.MethodPost, "/properties/search", v1.SearchRequest{
				SearchType: v1.SearchRequestSearchTypeMatricule, Municipality: "23027", Matricule: "1",
			})
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should reject an unknown search type", func() {
			w := do(http.MethodPost, "/properties/search", v1.SearchRequest{SearchType: "zip", Municipality: "66023"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(w).Error).To(Equal("invalid_request"))
		})

		It("should reject incomplete criteria", func() {
			w := do(http.MethodPost, "/properties/search", v1.SearchRequest{
				SearchType: v1.SearchRequestSearchTypeOwner, Municipality: "66023", OwnerFirstName: "Marie",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(w).Message).To(Equal("owner first and last name required"))
		})
	})
})
