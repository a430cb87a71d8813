package dynamo

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"user-profile-api/internal/models"
	"user-profile-api/internal/repositories"
)

const (
	entityName = "user"

	// Every store call completes or fails within this bound
	operationTimeout = 5 * time.Second
)

// userItem is the persisted table layout. Timestamps are stored as
// RFC3339Nano strings; expiresAt is the table's TTL attribute, reserved
// and unused by current logic.
type userItem struct {
	UserID    string `dynamodbav:"userId"`
	Email     string `dynamodbav:"email"`
	FirstName string `dynamodbav:"firstName"`
	LastName  string `dynamodbav:"lastName"`
	Age       *int   `dynamodbav:"age,omitempty"`
	CreatedAt string `dynamodbav:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt"`
	ExpiresAt *int64 `dynamodbav:"expiresAt,omitempty"`
}

func toItem(user *models.UserProfile) *userItem {
	return &userItem{
		UserID:    user.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Age:       user.Age,
		CreatedAt: user.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339Nano),
		ExpiresAt: user.ExpiresAt,
	}
}

func (i *userItem) toModel() (*models.UserProfile, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, i.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, i.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		UserID:    i.UserID,
		Email:     i.Email,
		FirstName: i.FirstName,
		LastName:  i.LastName,
		Age:       i.Age,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		ExpiresAt: i.ExpiresAt,
	}, nil
}

// UserRepository implements repositories.UserRepository against a
// DynamoDB table keyed by userId.
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *logrus.Logger
}

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *logrus.Logger) repositories.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func (r *UserRepository) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: id},
	}
}

// Create persists a new profile. Duplicate protection is the caller's
// existence check; the write itself is a plain put.
func (r *UserRepository) Create(ctx context.Context, user *models.UserProfile) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	item, err := attributevalue.MarshalMap(toItem(user))
	if err != nil {
		return repositories.NewRepositoryError("create", entityName, user.UserID, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return r.wrapStoreError("create", user.UserID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": user.UserID,
		"table":   r.tableName,
	}).Debug("User profile created")

	return nil
}

// GetByID retrieves a profile by its identity key
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(id),
	})
	if err != nil {
		return nil, r.wrapStoreError("get", id, err)
	}

	if len(out.Item) == 0 {
		return nil, repositories.NotFoundError(entityName, id)
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, repositories.NewRepositoryError("get", entityName, id, err)
	}

	user, err := item.toModel()
	if err != nil {
		return nil, repositories.NewRepositoryError("get", entityName, id, err)
	}

	return user, nil
}

// UpdateFields applies a partial update, setting only the supplied
// fields plus updatedAt. The record must already exist.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, update *models.UserUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	builder := expression.Set(
		expression.Name("updatedAt"),
		expression.Value(update.UpdatedAt.Format(time.RFC3339Nano)),
	)
	if update.Email != nil {
		builder = builder.Set(expression.Name("email"), expression.Value(*update.Email))
	}
	if update.FirstName != nil {
		builder = builder.Set(expression.Name("firstName"), expression.Value(*update.FirstName))
	}
	if update.LastName != nil {
		builder = builder.Set(expression.Name("lastName"), expression.Value(*update.LastName))
	}
	if update.Age != nil {
		builder = builder.Set(expression.Name("age"), expression.Value(*update.Age))
	}

	// Condition guards against updating a record deleted between the
	// caller's existence check and this write
	expr, err := expression.NewBuilder().
		WithUpdate(builder).
		WithCondition(expression.AttributeExists(expression.Name("userId"))).
		Build()
	if err != nil {
		return repositories.NewRepositoryError("update", entityName, id, err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return repositories.NotFoundError(entityName, id)
		}
		return r.wrapStoreError("update", id, err)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": id,
		"table":   r.tableName,
	}).Debug("User profile updated")

	return nil
}

// Delete removes a profile by its identity key
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(id),
	})
	if err != nil {
		return r.wrapStoreError("delete", id, err)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": id,
		"table":   r.tableName,
	}).Debug("User profile deleted")

	return nil
}

// List performs an unbounded full-table scan, following pagination
// internally until the table is exhausted.
func (r *UserRepository) List(ctx context.Context) ([]*models.UserProfile, error) {
	users := []*models.UserProfile{}

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.scanPage(ctx, startKey)
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var item userItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, repositories.NewRepositoryError("list", entityName, "", err)
			}
			user, err := item.toModel()
			if err != nil {
				return nil, repositories.NewRepositoryError("list", entityName, "", err)
			}
			users = append(users, user)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return users, nil
}

func (r *UserRepository) scanPage(ctx context.Context, startKey map[string]types.AttributeValue) (*dynamodb.ScanOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:         aws.String(r.tableName),
		ExclusiveStartKey: startKey,
	})
	if err != nil {
		return nil, r.wrapStoreError("list", "", err)
	}
	return out, nil
}

// Exists checks whether a profile with the given ID exists
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.tableName),
		Key:                  r.key(id),
		ProjectionExpression: aws.String("userId"),
	})
	if err != nil {
		return false, r.wrapStoreError("exists", id, err)
	}

	return len(out.Item) > 0, nil
}

// wrapStoreError maps AWS SDK failures into the repository error
// taxonomy so callers can distinguish transient from definitive ones.
func (r *UserRepository) wrapStoreError(op, id string, err error) error {
	r.logger.WithFields(logrus.Fields{
		"operation": op,
		"user_id":   id,
		"table":     r.tableName,
		"error":     err.Error(),
	}).Error("Store operation failed")

	if errors.Is(err, context.DeadlineExceeded) {
		return &repositories.RepositoryError{
			Op:     op,
			Entity: entityName,
			ID:     id,
			Err:    repositories.ErrTimeout,
		}
	}

	var throughput *types.ProvisionedThroughputExceededException
	var unavailable *types.InternalServerError
	if errors.As(err, &throughput) || errors.As(err, &unavailable) {
		return repositories.ConnectionError(op, entityName, err)
	}

	return repositories.NewRepositoryError(op, entityName, id, err)
}
