package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	clientsvc "github.com/vladislavdragonenkov/orderhub/internal/service/client"
	ordersvc "github.com/vladislavdragonenkov/orderhub/internal/service/order"
	productsvc "github.com/vladislavdragonenkov/orderhub/internal/service/product"
	"github.com/vladislavdragonenkov/orderhub/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	clients := memory.NewClientRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	outbox := memory.NewOutboxRepository()

	orderService := ordersvc.NewServiceWithoutMetrics(
		memory.NewUnitOfWork(), orders, clients, products, outbox, nil,
	)

	router := NewRouter(
		NewClientHandler(clientsvc.NewService(clients, nil), nil),
		NewProductHandler(productsvc.NewService(products, nil), nil),
		NewOrderHandler(orderService, nil),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func createClient(t *testing.T, srv *httptest.Server, cpf string) ClientResponse {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/clients", ClientRequest{
		Name: "Maria Silva",
		CPF:  cpf,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var client ClientResponse
	require.NoError(t, json.Unmarshal(body, &client))
	return client
}

func createProduct(t *testing.T, srv *httptest.Server, priceMinor int64, quantity int32) ProductResponse {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/products", ProductRequest{
		Name:       "Keyboard",
		PriceMinor: priceMinor,
		Quantity:   quantity,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var product ProductResponse
	require.NoError(t, json.Unmarshal(body, &product))
	return product
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	client := createClient(t, srv, "12345678901")
	product := createProduct(t, srv, 5000, 10)

	resp, body := doJSON(t, http.MethodPost, fmt.Sprintf("%s/orders/client/%d", srv.URL, client.ID), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var order OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))
	require.Equal(t, "created", order.Status)
	require.Zero(t, order.TotalMinor)

	resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("%s/orders/%d/items", srv.URL, order.ID), AddItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &order))
	require.Equal(t, int64(10000), order.TotalMinor)
	require.Len(t, order.Items, 1)

	resp, body = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/orders/%d/status", srv.URL, order.ID), StatusRequest{Status: "PAID"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &order))
	require.Equal(t, "paid", order.Status)

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/orders/%d", srv.URL, order.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/orders/%d", srv.URL, order.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	// not found -> 404
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/clients/404", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var msg ErrorMessage
	require.NoError(t, json.Unmarshal(body, &msg))
	require.Equal(t, http.StatusNotFound, msg.Status)
	require.Equal(t, "/clients/404", msg.Path)
	require.Equal(t, "client not found", msg.Message)

	// бизнес-правило -> 400
	client := createClient(t, srv, "12345678901")
	product := createProduct(t, srv, 5000, 1)

	resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("%s/orders/client/%d", srv.URL, client.ID), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))

	resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("%s/orders/%d/items", srv.URL, order.ID), AddItemRequest{
		ProductID: product.ID,
		Quantity:  5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &msg))
	require.Contains(t, msg.Message, "insufficient stock")
	require.Contains(t, msg.Message, "available 1")

	// конфликт натурального ключа -> 409
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/clients", ClientRequest{
		Name: "Jose Souza",
		CPF:  "12345678901",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &msg))
	require.Equal(t, "cpf already registered", msg.Message)
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	// CPF не из 11 цифр
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/clients", ClientRequest{
		Name: "Maria Silva",
		CPF:  "123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// пустое имя товара
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/products", ProductRequest{
		Name:       "   ",
		PriceMinor: 100,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// нулевое количество позиции
	client := createClient(t, srv, "12345678901")
	resp, body := doJSON(t, http.MethodPost, fmt.Sprintf("%s/orders/client/%d", srv.URL, client.ID), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))

	resp, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/orders/%d/items", srv.URL, order.ID), AddItemRequest{
		ProductID: 1,
		Quantity:  0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// нечисловой id в пути
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/orders/abc", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// неизвестный статус заказа
	resp, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/orders/%d/status", srv.URL, order.ID), StatusRequest{Status: "shipped"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIllegalStatusTransitionOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	client := createClient(t, srv, "12345678901")
	resp, body := doJSON(t, http.MethodPost, fmt.Sprintf("%s/orders/client/%d", srv.URL, client.ID), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))

	resp, body = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/orders/%d/status", srv.URL, order.ID), StatusRequest{Status: "finished"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var msg ErrorMessage
	require.NoError(t, json.Unmarshal(body, &msg))
	require.Contains(t, msg.Message, "cannot change order status from created to finished")
}
