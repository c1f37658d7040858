package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	cartService "github.com/limat-tech/voicebot/services/cart"

	"github.com/limat-tech/voicebot/models"
)

// setupTestDB starts a PostgreSQL testcontainer and returns a migrated GORM
// handle. Skips the test when no container runtime is available. SQLite is not
// an option here: SELECT ... FOR UPDATE only exists on real PostgreSQL.
func setupTestDB(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("container runtime unavailable: %v", err)
	}
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) *models.Customer {
	c := &models.Customer{Name: "Test Customer", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) *models.Product {
	p := &models.Product{
		NameEN:        name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedCartLine(t *testing.T, db *gorm.DB, customerID, productID uint, qty int) {
	cart := models.Cart{CustomerID: customerID}
	require.NoError(t, db.Where("customer_id = ?", customerID).FirstOrCreate(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: qty}).Error)
}

func TestProcess_PlacesOrderAndDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "alice@example.com")
	apples := seedProduct(t, db, "Apples", "5.00", 10)
	milk := seedProduct(t, db, "Milk", "2.50", 3)
	seedCartLine(t, db, customer.ID, apples.ID, 2)
	seedCartLine(t, db, customer.ID, milk.ID, 3)

	result, err := Process(db, customer.ID)
	require.NoError(t, err)
	assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("17.50")),
		"expected 17.50, got %s", result.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, result.Status)

	var gotApples, gotMilk models.Product
	require.NoError(t, db.First(&gotApples, apples.ID).Error)
	require.NoError(t, db.First(&gotMilk, milk.ID).Error)
	assert.Equal(t, 8, gotApples.StockQuantity)
	assert.Equal(t, 0, gotMilk.StockQuantity)

	// Cart lines are gone, the cart itself survives empty
	var lineCount int64
	db.Model(&models.CartItem{}).Count(&lineCount)
	assert.Zero(t, lineCount)
	var cart models.Cart
	assert.NoError(t, db.Where("customer_id = ?", customer.ID).First(&cart).Error)

	// Order lines carry a price snapshot and sum to the order total
	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, result.OrderID).Error)
	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Subtotal())
	}
	assert.True(t, sum.Equal(order.TotalAmount))
}

func TestProcess_EmptyCart(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "bob@example.com")

	_, err := Process(db, customer.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestProcess_InsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "carol@example.com")
	apples := seedProduct(t, db, "Apples", "5.00", 10)
	milk := seedProduct(t, db, "Milk", "2.50", 1)
	seedCartLine(t, db, customer.ID, apples.ID, 2)
	seedCartLine(t, db, customer.ID, milk.ID, 3)

	_, err := Process(db, customer.ID)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing changed: no order, stock intact, cart intact
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)

	var gotApples models.Product
	require.NoError(t, db.First(&gotApples, apples.ID).Error)
	assert.Equal(t, 10, gotApples.StockQuantity)

	var lines int64
	db.Model(&models.CartItem{}).Count(&lines)
	assert.EqualValues(t, 2, lines)
}

func TestProcess_InactiveProduct(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "dave@example.com")
	p := seedProduct(t, db, "Discontinued Tea", "4.00", 5)
	require.NoError(t, db.Model(p).Update("is_active", false).Error)
	seedCartLine(t, db, customer.ID, p.ID, 1)

	_, err := Process(db, customer.ID)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestProcess_ConcurrentCheckoutsSingleUnit(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Last Jar of Honey", "9.99", 1)

	first := seedCustomer(t, db, "erin@example.com")
	second := seedCustomer(t, db, "frank@example.com")
	seedCartLine(t, db, first.ID, p.ID, 1)
	seedCartLine(t, db, second.ID, p.ID, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, customerID uint) {
			defer wg.Done()
			_, errs[i] = Process(db, customerID)
		}(i, id)
	}
	wg.Wait()

	// Exactly one checkout wins the row lock
	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, winners)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestProcess_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "grace@example.com")
	p := seedProduct(t, db, "Olive Oil", "12.00", 5)

	_, err := cartService.AddItem(db, customer.ID, p.ID, 1)
	require.NoError(t, err)

	result, err := Process(db, customer.ID)
	require.NoError(t, err)

	// Reprice after the sale; the recorded order is unaffected
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		Update("price", decimal.RequireFromString("15.00")).Error)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, result.OrderID).Error)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("12.00")))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("12.00")))
}
