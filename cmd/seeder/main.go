package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/arzan03/CampDirectory/internal/config"
	"github.com/arzan03/CampDirectory/internal/db"
	"github.com/arzan03/CampDirectory/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collections seeded from _data, in file order.
var collections = []string{"bootcamps", "courses", "users", "reviews"}

func main() {
	importFlag := flag.Bool("i", false, "import data from _data into the database")
	deleteFlag := flag.Bool("d", false, "delete all data from the database")
	dataDir := flag.String("data", "_data", "directory holding the seed files")
	flag.Parse()

	if *importFlag == *deleteFlag {
		log.Fatal("Usage: seeder -i | -d")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	database := db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	defer db.Disconnect(database)

	if *importFlag {
		importData(database, *dataDir)
	} else {
		deleteData(database)
	}
}

func importData(database *mongo.Database, dataDir string) {
	tasks := make([]utils.ParallelTask, 0, len(collections))
	for _, name := range collections {
		name := name
		tasks = append(tasks, func() error {
			docs, err := loadDocuments(filepath.Join(dataDir, name+".json"))
			if err != nil {
				return err
			}
			_, err = database.Collection(name).InsertMany(context.Background(), docs)
			return err
		})
	}

	for i, err := range utils.RunParallelTasks(tasks) {
		if err != nil {
			log.Fatalf("Import of %s failed: %v", collections[i], err)
		}
	}
	log.Println("Data imported")
}

func deleteData(database *mongo.Database) {
	for _, name := range collections {
		if _, err := database.Collection(name).DeleteMany(context.Background(), bson.M{}); err != nil {
			log.Fatalf("Delete of %s failed: %v", name, err)
		}
	}
	log.Println("Data deleted")
}

// loadDocuments reads an array of Mongo extended JSON documents.
func loadDocuments(path string) ([]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	docs := make([]interface{}, 0, len(raw))
	for _, r := range raw {
		var doc bson.M
		if err := bson.UnmarshalExtJSON(r, false, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
