package repository

import (
	"context"
	"errors"
	"time"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	crewCollection   = "crew_members"
	flightCollection = "flights"
	reportCollection = "crew_reports"
	runLogCollection = "processing_runs"
)

// crewDocument mirrors a crew_members document. Pointer fields stay nil when
// the field is missing so the validator can reject the record.
type crewDocument struct {
	ID       *int64  `bson:"idPilot"`
	FullName *string `bson:"fullName"`
}

type flightDocumentBSON struct {
	ID               *int64     `bson:"id"`
	AircraftType     *string    `bson:"aircraftType"`
	AircraftNumber   *string    `bson:"aircraftNumber"`
	DepartureTime    *time.Time `bson:"departureTime"`
	ArrivalTime      *time.Time `bson:"arrivalTime"`
	DepartureAirport *string    `bson:"departureAirport"`
	ArrivalAirport   *string    `bson:"arrivalAirport"`
	IDPilots         []*int64   `bson:"idPilots"`
}

type monthReportBSON struct {
	Month               time.Time `bson:"month"`
	TotalFlightHours    int64     `bson:"totalFlightHours"`
	TotalFlightsInMonth int64     `bson:"totalFlightsInMonth"`
	ExceedsMonthlyLimit bool      `bson:"exceedsMonthlyLimit"`
	ExceedsWeeklyLimit  bool      `bson:"exceedsWeeklyLimit"`
	ExceedsDailyLimit   bool      `bson:"exceedsDailyLimit"`
}

type crewReportBSON struct {
	CrewID    int64             `bson:"crewId"`
	FullName  string            `bson:"fullName"`
	Months    []monthReportBSON `bson:"months"`
	UpdatedAt time.Time         `bson:"updatedAt"`
}

// MongoRosterRepository loads crew and flight records from MongoDB
type MongoRosterRepository struct {
	crew    *mongo.Collection
	flights *mongo.Collection
}

// NewMongoRosterRepository creates a new MongoDB roster repository
func NewMongoRosterRepository(db *mongo.Database) repository.RosterRepository {
	return &MongoRosterRepository{
		crew:    db.Collection(crewCollection),
		flights: db.Collection(flightCollection),
	}
}

// Load reads every crew member and flight, ordered by identifier
func (r *MongoRosterRepository) Load(ctx context.Context) (*entity.Roster, error) {
	opts := options.Find().SetSort(bson.D{{Key: "idPilot", Value: 1}})
	cursor, err := r.crew.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, repository.NewIOError("load", crewCollection, err)
	}
	var crewDocs []crewDocument
	if err := cursor.All(ctx, &crewDocs); err != nil {
		return nil, repository.NewIOError("decode", crewCollection, err)
	}

	opts = options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err = r.flights.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, repository.NewIOError("load", flightCollection, err)
	}
	var flightDocs []flightDocumentBSON
	if err := cursor.All(ctx, &flightDocs); err != nil {
		return nil, repository.NewIOError("decode", flightCollection, err)
	}

	roster := &entity.Roster{
		Crew:    make([]entity.CrewRecord, 0, len(crewDocs)),
		Flights: make([]entity.FlightRecord, 0, len(flightDocs)),
	}
	for _, c := range crewDocs {
		roster.Crew = append(roster.Crew, entity.CrewRecord{ID: c.ID, FullName: c.FullName})
	}
	for _, f := range flightDocs {
		roster.Flights = append(roster.Flights, entity.FlightRecord{
			ID:                   f.ID,
			AircraftType:         f.AircraftType,
			AircraftRegistration: f.AircraftNumber,
			DepartureTime:        f.DepartureTime,
			ArrivalTime:          f.ArrivalTime,
			DepartureAirport:     f.DepartureAirport,
			ArrivalAirport:       f.ArrivalAirport,
			CrewIDs:              f.IDPilots,
		})
	}
	return roster, nil
}

// MongoReportRepository stores one document of month reports per crew member
type MongoReportRepository struct {
	collection *mongo.Collection
}

// NewMongoReportRepository creates a new MongoDB report repository and
// ensures the unique index on crewId
func NewMongoReportRepository(ctx context.Context, db *mongo.Database) (repository.MonthReportRepository, error) {
	collection := db.Collection(reportCollection)

	indexModel := mongo.IndexModel{
		Keys:    bson.M{"crewId": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, repository.NewIOError("index", reportCollection, err)
	}

	return &MongoReportRepository{
		collection: collection,
	}, nil
}

// Name identifies the sink
func (r *MongoReportRepository) Name() string {
	return "mongo"
}

// Save upserts a document per crew member and removes documents of crew
// members absent from the output
func (r *MongoReportRepository) Save(ctx context.Context, output *entity.Output) error {
	now := time.Now()
	ids := make([]int64, 0, len(output.Specialists))
	models := make([]mongo.WriteModel, 0, len(output.Specialists))

	for _, member := range output.Specialists {
		ids = append(ids, member.ID)
		doc := crewReportBSON{
			CrewID:    member.ID,
			FullName:  member.FullName,
			Months:    toMonthReportBSON(member.Reports),
			UpdatedAt: now,
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"crewId": member.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if len(models) > 0 {
		if _, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return repository.NewIOError("save", reportCollection, err)
		}
	}

	if _, err := r.collection.DeleteMany(ctx, bson.M{"crewId": bson.M{"$nin": ids}}); err != nil {
		return repository.NewIOError("save", reportCollection, err)
	}
	return nil
}

// FindByCrewID returns the stored month reports of a crew member
func (r *MongoReportRepository) FindByCrewID(ctx context.Context, crewID int64) ([]entity.MonthReport, error) {
	var doc crewReportBSON
	err := r.collection.FindOne(ctx, bson.M{"crewId": crewID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.NewIOError("load", reportCollection, err)
	}

	reports := make([]entity.MonthReport, 0, len(doc.Months))
	for _, m := range doc.Months {
		reports = append(reports, entity.MonthReport{
			Month:               m.Month.UTC(),
			TotalFlightHours:    m.TotalFlightHours,
			TotalFlightsInMonth: m.TotalFlightsInMonth,
			ExceedsMonthlyLimit: m.ExceedsMonthlyLimit,
			ExceedsWeeklyLimit:  m.ExceedsWeeklyLimit,
			ExceedsDailyLimit:   m.ExceedsDailyLimit,
		})
	}
	return reports, nil
}

func toMonthReportBSON(reports []entity.MonthReport) []monthReportBSON {
	out := make([]monthReportBSON, 0, len(reports))
	for _, r := range reports {
		out = append(out, monthReportBSON{
			Month:               r.Month,
			TotalFlightHours:    r.TotalFlightHours,
			TotalFlightsInMonth: r.TotalFlightsInMonth,
			ExceedsMonthlyLimit: r.ExceedsMonthlyLimit,
			ExceedsWeeklyLimit:  r.ExceedsWeeklyLimit,
			ExceedsDailyLimit:   r.ExceedsDailyLimit,
		})
	}
	return out
}

// MongoRunRepository appends processing runs to a log collection
type MongoRunRepository struct {
	collection *mongo.Collection
}

// NewMongoRunRepository creates a new MongoDB run repository
func NewMongoRunRepository(ctx context.Context, db *mongo.Database) (repository.RunRepository, error) {
	collection := db.Collection(runLogCollection)

	// Index on startedAt for listing recent runs
	indexModel := mongo.IndexModel{
		Keys: bson.M{"startedAt": -1},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, repository.NewIOError("index", runLogCollection, err)
	}

	return &MongoRunRepository{
		collection: collection,
	}, nil
}

// Record inserts a processing run
func (r *MongoRunRepository) Record(ctx context.Context, run *entity.ProcessingRun) error {
	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		return repository.NewIOError("record", runLogCollection, err)
	}
	return nil
}
