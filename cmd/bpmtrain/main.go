// Package main trains a Bayes point machine classifier from a CSV file of
// feature columns followed by an integer label column.
package main

import (
	"encoding/csv"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/bayespoint"
	"github.com/hscells/bayespoint/data"
	"github.com/hscells/bayespoint/store"
	"github.com/magiconair/properties"
	"gopkg.in/cheggaaa/pb.v1"
)

type args struct {
	DataFile      string  `arg:"help:CSV file of feature columns followed by an integer label column.,required"`
	ModelFile     string  `arg:"help:Path to write the trained model to.,required"`
	Properties    string  `arg:"help:Optional .properties file supplying training defaults."`
	Iterations    int     `arg:"help:Number of training iterations."`
	Batches       int     `arg:"help:Number of training batches."`
	Multiclass    bool    `arg:"help:Train a multi-class classifier instead of a binary one."`
	Evidence      bool    `arg:"help:Compute the log model evidence."`
	PriorVariance float64 `arg:"help:Gaussian weight prior variance; 0 selects the compound prior."`
	StoreDir      string  `arg:"help:Optional model store directory to also register the model in."`
	StoreName     string  `arg:"help:Name to register the model under in the store."`
}

func (args) Version() string {
	return "Bayes Point Machine Trainer (bpmtrain) 19.Jun.2020"
}

func (args) Description() string {
	return `Train a Bayes point machine classifier and save it in the versioned model format.`
}

func main() {
	var args args
	args.Iterations = 30
	args.Batches = 1
	arg.MustParse(&args)

	if args.Properties != "" {
		p := properties.MustLoadFile(args.Properties, properties.UTF8)
		args.Iterations = p.GetInt("iterations", args.Iterations)
		args.Batches = p.GetInt("batches", args.Batches)
		args.Evidence = p.GetBool("evidence", args.Evidence)
		args.PriorVariance = p.GetFloat64("prior_variance", args.PriorVariance)
	}

	features, labels, err := readTrainingCSV(args.DataFile)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}

	classifier, err := construct(args)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}
	if err := classifier.Settings().Training.SetIterationCount(args.Iterations); err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}
	if err := classifier.Settings().Training.SetBatchCount(args.Batches); err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}
	if err := classifier.Settings().Training.SetComputeModelEvidence(args.Evidence); err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}
	if args.PriorVariance > 0 {
		if err := classifier.Settings().Training.SetWeightPriorVariance(args.PriorVariance); err != nil {
			log.Fatalln(errors.Wrap(err, 0))
		}
	}

	bar := pb.StartNew(args.Iterations * args.Batches)
	classifier.Subscribe(func(bayespoint.Progress) {
		bar.Increment()
	})

	if err := classifier.Train(features, labels); err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}
	bar.Finish()

	if args.Evidence {
		evidence, err := classifier.LogModelEvidence()
		if err != nil {
			log.Fatalln(errors.Wrap(err, 0))
		}
		log.Printf("log model evidence: %f\n", evidence)
	}

	if err := classifier.SaveFile(args.ModelFile); err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}
	log.Printf("model written to %s\n", args.ModelFile)

	if args.StoreDir != "" {
		name := args.StoreName
		if name == "" {
			name = filepath.Base(args.ModelFile)
		}
		s, err := store.New(args.StoreDir, 16)
		if err != nil {
			log.Fatalln(errors.Wrap(err, 0))
		}
		artifact, err := ioutil.ReadFile(args.ModelFile)
		if err != nil {
			log.Fatalln(errors.Wrap(err, 0))
		}
		if err := s.Put(name, artifact); err != nil {
			log.Fatalln(errors.Wrap(err, 0))
		}
		log.Printf("model registered as %s\n", name)
	}
}

func construct(args args) (*bayespoint.Classifier, error) {
	mapping := data.DenseMapping{}
	switch {
	case args.Multiclass && args.PriorVariance > 0:
		return bayespoint.NewGaussianMulticlassClassifier(mapping)
	case args.Multiclass:
		return bayespoint.NewMulticlassClassifier(mapping)
	case args.PriorVariance > 0:
		return bayespoint.NewGaussianBinaryClassifier(mapping)
	}
	return bayespoint.NewBinaryClassifier(mapping)
}

// readTrainingCSV parses a CSV of float feature columns with a trailing
// integer label column.
func readTrainingCSV(path string) ([][]float64, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}

	var (
		features [][]float64
		labels   []int
	)
	for i, record := range records {
		if len(record) < 2 {
			return nil, nil, errors.Errorf("row %d needs at least one feature and a label", i)
		}
		row := make([]float64, len(record)-1)
		for j, field := range record[:len(record)-1] {
			if row[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, nil, errors.Errorf("row %d column %d: %v", i, j, err)
			}
		}
		label, err := strconv.Atoi(record[len(record)-1])
		if err != nil {
			return nil, nil, errors.Errorf("row %d label: %v", i, err)
		}
		features = append(features, row)
		labels = append(labels, label)
	}
	return features, labels, nil
}
