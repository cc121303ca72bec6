package store

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stockflow/internal/models"
)

// MongoStore implements Store on top of a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and pings it. The app cannot run without its store,
// so a failed connection is fatal, same as a missing DSN.
func Connect(uri, dbName string) *MongoStore {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	log.Println("Connected to MongoDB")
	return &MongoStore{client: client, db: client.Database(dbName)}
}

// Disconnect closes the underlying client.
func (m *MongoStore) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStore) Users() UserStore         { return &mongoUsers{c: m.db.Collection("users")} }
func (m *MongoStore) Businesses() BusinessStore { return &mongoBusinesses{c: m.db.Collection("businesses")} }
func (m *MongoStore) Products() ProductStore   { return &mongoProducts{c: m.db.Collection("products")} }
func (m *MongoStore) Suppliers() SupplierStore { return &mongoSuppliers{c: m.db.Collection("suppliers")} }
func (m *MongoStore) Purchases() PurchaseStore { return &mongoPurchases{c: m.db.Collection("purchases")} }
func (m *MongoStore) Sales() SaleStore         { return &mongoSales{c: m.db.Collection("sales")} }

func translateErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// --- users ---

type mongoUsers struct{ c *mongo.Collection }

func (s *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

func (s *mongoUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

func (s *mongoUsers) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) FindByBusinessAndRole(ctx context.Context, businessID primitive.ObjectID, role string) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"business_id": businessID, "role": role})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) Insert(ctx context.Context, u *models.User) error {
	res, err := s.c.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) DeleteByBusinessAndRole(ctx context.Context, businessID primitive.ObjectID, role string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"business_id": businessID, "role": role})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *mongoUsers) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// --- businesses ---

type mongoBusinesses struct{ c *mongo.Collection }

func (s *mongoBusinesses) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error) {
	var b models.Business
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, translateErr(err)
	}
	return &b, nil
}

func (s *mongoBusinesses) List(ctx context.Context) ([]models.Business, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var businesses []models.Business
	if err := cur.All(ctx, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (s *mongoBusinesses) Insert(ctx context.Context, b *models.Business) error {
	res, err := s.c.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoBusinesses) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- products ---

type mongoProducts struct{ c *mongo.Collection }

func (s *mongoProducts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (s *mongoProducts) List(ctx context.Context) ([]models.Product, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoProducts) ListInStock(ctx context.Context) ([]models.Product, error) {
	return s.find(ctx, bson.M{"current_quantity": bson.M{"$gt": 0}})
}

func (s *mongoProducts) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *mongoProducts) Insert(ctx context.Context, p *models.Product) error {
	res, err := s.c.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoProducts) Update(ctx context.Context, id primitive.ObjectID, upd ProductUpdate) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":             upd.Name,
		"description":      upd.Description,
		"unit":             upd.Unit,
		"purchase_price":   upd.PurchasePrice,
		"selling_price":    upd.SellingPrice,
		"min_stock":        upd.MinStock,
		"max_stock":        upd.MaxStock,
		"current_quantity": upd.CurrentQuantity,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProducts) DecrementQuantity(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	// The stock precondition rides inside the filter so the check and the
	// decrement are one atomic update_one call.
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "current_quantity": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"current_quantity": -qty}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *mongoProducts) IncrementQuantity(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"current_quantity": qty}},
	)
	return err
}

// --- suppliers ---

type mongoSuppliers struct{ c *mongo.Collection }

func (s *mongoSuppliers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error) {
	var sup models.Supplier
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sup); err != nil {
		return nil, translateErr(err)
	}
	return &sup, nil
}

func (s *mongoSuppliers) List(ctx context.Context) ([]models.Supplier, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var suppliers []models.Supplier
	if err := cur.All(ctx, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (s *mongoSuppliers) Insert(ctx context.Context, sup *models.Supplier) error {
	res, err := s.c.InsertOne(ctx, sup)
	if err != nil {
		return err
	}
	sup.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoSuppliers) Update(ctx context.Context, id primitive.ObjectID, upd SupplierUpdate) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":           upd.Name,
		"contact_person": upd.ContactPerson,
		"phone":          upd.Phone,
		"email":          upd.Email,
		"address":        upd.Address,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoSuppliers) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- purchases ---

type mongoPurchases struct{ c *mongo.Collection }

func (s *mongoPurchases) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error) {
	var p models.Purchase
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (s *mongoPurchases) List(ctx context.Context) ([]models.Purchase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var purchases []models.Purchase
	if err := cur.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *mongoPurchases) Insert(ctx context.Context, p *models.Purchase) error {
	res, err := s.c.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// --- sales ---

type mongoSales struct{ c *mongo.Collection }

func (s *mongoSales) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sale, error) {
	var sale models.Sale
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sale); err != nil {
		return nil, translateErr(err)
	}
	return &sale, nil
}

func (s *mongoSales) List(ctx context.Context) ([]models.Sale, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var sales []models.Sale
	if err := cur.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *mongoSales) Insert(ctx context.Context, sale *models.Sale) error {
	res, err := s.c.InsertOne(ctx, sale)
	if err != nil {
		return err
	}
	sale.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
