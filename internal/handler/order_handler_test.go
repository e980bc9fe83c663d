package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orderledger/internal/config"
	"orderledger/internal/infrastructure/database"
	"orderledger/pkg/response"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "handler_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Kafka: config.KafkaConfig{
			Topic: config.KafkaTopicConfig{
				OrderCreated:    "test.order.created",
				PaymentRecorded: "test.payment.recorded",
			},
		},
		Business: config.BusinessConfig{MaxRetryCount: 3},
	}

	return SetupRouter(db, nil, cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func createCustomer(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	_, envelope := doJSON(t, r, http.MethodPost, "/api/v1/customers", gin.H{
		"name":  "Handler Test",
		"email": email,
	})
	require.EqualValues(t, response.CodeSuccess, envelope.Code)
	return envelope.Data.(map[string]interface{})["id"].(string)
}

func createProduct(t *testing.T, r *gin.Engine, name string, price int64) string {
	t.Helper()

	_, envelope := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"name":  name,
		"price": price,
	})
	require.EqualValues(t, response.CodeSuccess, envelope.Code)
	return envelope.Data.(map[string]interface{})["id"].(string)
}

func TestCreateOrderEndpoint(t *testing.T) {
	r := setupRouter(t)

	customerID := createCustomer(t, r, "order-endpoint@example.com")
	productID := createProduct(t, r, "Endpoint Widget", 25000)

	w, envelope := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"label":       "ORD-HTTP-1",
		"customer_id": customerID,
		"product_id":  productID,
		"total":       4,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, response.CodeSuccess, envelope.Code)

	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "ORD-HTTP-1", data["label"])
	assert.EqualValues(t, 4, data["total"])

	trans := data["transaction"].(map[string]interface{})
	assert.EqualValues(t, 100000, trans["total_amount"])
	assert.Equal(t, "PENDING", trans["status"])
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	r := setupRouter(t)

	// missing required fields never reach the service
	_, envelope := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"label": "ORD-HTTP-BAD",
	})
	assert.EqualValues(t, response.CodeParamError, envelope.Code)
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	r := setupRouter(t)

	w, envelope := doJSON(t, r, http.MethodGet, "/api/v1/orders/missing", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, response.CodeNotFound, envelope.Code)
	assert.NotEmpty(t, envelope.Message)
}

func TestDuplicateCustomerEmailEndpointConflict(t *testing.T) {
	r := setupRouter(t)

	createCustomer(t, r, "dup@example.com")
	_, envelope := doJSON(t, r, http.MethodPost, "/api/v1/customers", gin.H{
		"name":  "Dup",
		"email": "dup@example.com",
	})
	assert.EqualValues(t, response.CodeConflict, envelope.Code)
}

func TestPaymentEndpointsFlow(t *testing.T) {
	r := setupRouter(t)

	customerID := createCustomer(t, r, "pay-endpoint@example.com")
	productID := createProduct(t, r, "Payable Widget", 100000)

	_, orderEnvelope := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"label":       "ORD-HTTP-PAY",
		"customer_id": customerID,
		"product_id":  productID,
		"total":       1,
	})
	require.EqualValues(t, response.CodeSuccess, orderEnvelope.Code)
	transactionID := orderEnvelope.Data.(map[string]interface{})["transaction_id"].(string)

	_, payEnvelope := doJSON(t, r, http.MethodPost, "/api/v1/payments", gin.H{
		"transaction_id": transactionID,
		"amount":         40000,
	})
	require.EqualValues(t, response.CodeSuccess, payEnvelope.Code)

	// overpayment is a param-level rejection
	_, overEnvelope := doJSON(t, r, http.MethodPost, "/api/v1/payments", gin.H{
		"transaction_id": transactionID,
		"amount":         60001,
	})
	assert.EqualValues(t, response.CodeParamError, overEnvelope.Code)

	_, transEnvelope := doJSON(t, r, http.MethodGet, "/api/v1/transactions/"+transactionID, nil)
	require.EqualValues(t, response.CodeSuccess, transEnvelope.Code)
	transData := transEnvelope.Data.(map[string]interface{})
	assert.EqualValues(t, 40000, transData["amount_paid"])
	assert.EqualValues(t, 60000, transData["amount_due"])
	assert.Equal(t, "PARTIALLY_PAID", transData["status"])

	_, listEnvelope := doJSON(t, r, http.MethodGet, "/api/v1/transactions/"+transactionID+"/payments", nil)
	require.EqualValues(t, response.CodeSuccess, listEnvelope.Code)
	items := listEnvelope.Data.(map[string]interface{})["items"].([]interface{})
	assert.Len(t, items, 1)
}

func TestListOrdersEndpointPagination(t *testing.T) {
	r := setupRouter(t)

	customerID := createCustomer(t, r, "page-endpoint@example.com")
	productID := createProduct(t, r, "Paged Widget", 1000)

	for i := 0; i < 3; i++ {
		_, envelope := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
			"label":       fmt.Sprintf("ORD-HTTP-PAGE-%d", i),
			"customer_id": customerID,
			"product_id":  productID,
			"total":       1,
		})
		require.EqualValues(t, response.CodeSuccess, envelope.Code)
	}

	_, envelope := doJSON(t, r, http.MethodGet, "/api/v1/orders?limit=2", nil)
	require.EqualValues(t, response.CodeSuccess, envelope.Code)
	data := envelope.Data.(map[string]interface{})
	assert.Len(t, data["items"].([]interface{}), 2)
	cursor := data["next_cursor"].(string)
	require.NotEmpty(t, cursor)

	_, envelope = doJSON(t, r, http.MethodGet, "/api/v1/orders?limit=2&cursor="+cursor, nil)
	require.EqualValues(t, response.CodeSuccess, envelope.Code)
	data = envelope.Data.(map[string]interface{})
	assert.Len(t, data["items"].([]interface{}), 1)
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
