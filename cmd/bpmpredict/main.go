// Package main predicts labels for a CSV file of feature columns using a
// trained Bayes point machine model.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/bayespoint"
	"github.com/hscells/bayespoint/data"
)

type args struct {
	ModelFile string `arg:"help:Path to a model written by bpmtrain.,required"`
	DataFile  string `arg:"help:CSV file of feature columns to predict labels for.,required"`
	Dists     bool   `arg:"help:Also print the posterior label distribution per instance."`
}

func (args) Version() string {
	return "Bayes Point Machine Predictor (bpmpredict) 19.Jun.2020"
}

func (args) Description() string {
	return `Predict labels for instances using a trained Bayes point machine classifier.`
}

func main() {
	var args args
	arg.MustParse(&args)

	classifier, err := bayespoint.LoadFile(args.ModelFile, data.DenseMapping{})
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}

	features, err := readFeatureCSV(args.DataFile)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}

	labels, err := classifier.Predict(features)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}
	dists, err := classifier.PredictDistribution(features)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0))
	}

	for i, label := range labels {
		if args.Dists {
			fmt.Printf("%d %v\n", label, dists[i].Probs())
			continue
		}
		fmt.Println(label)
	}
}

func readFeatureCSV(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var features [][]float64
	for i, record := range records {
		row := make([]float64, len(record))
		for j, field := range record {
			if row[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, errors.Errorf("row %d column %d: %v", i, j, err)
			}
		}
		features = append(features, row)
	}
	return features, nil
}
