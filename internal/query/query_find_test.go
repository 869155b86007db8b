package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFindCountIsPageLength(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("count reflects the returned page, not the total", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".bootcamps"
		mt.AddMockResponses(
			// CountDocuments sees five matches in total.
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(5)}}),
			// The page itself carries two of them.
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "name", Value: "Devworks"}},
				bson.D{{Key: "name", Value: "ModernTech"}},
			),
		)

		var docs []bson.M
		result, err := Find(context.Background(), mt.DB.Collection("bootcamps"),
			map[string]string{"page": "1", "limit": "2"}, nil, &docs)
		require.NoError(mt, err)

		assert.Equal(mt, int64(2), result.Count)
		assert.Len(mt, docs, 2)
		require.NotNil(mt, result.Pagination.Next)
		assert.Equal(mt, int64(2), result.Pagination.Next.Page)
		assert.Nil(mt, result.Pagination.Prev)
	})
}
