package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/medvault/medvault/internal/client/api"
)

// AddPatient prompts for patient details and uploads a single record.
func (a *App) AddPatient(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter patient name", os.Stdout)
	if err != nil {
		return err
	}

	dateOfBirth, err := getSimpleText(a.reader, "Enter date of birth (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	ageText, err := getSimpleText(a.reader, "Enter age", os.Stdout)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		log.Printf("Age must be a number")
		return err
	}

	created, err := a.client.CreatePatient(ctx, &api.Patient{
		Name:        name,
		DateOfBirth: dateOfBirth,
		Age:         age,
	})
	if err != nil {
		log.Printf("Upload unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Created patient %s\n", created.ID)
	return nil
}

// List prints all patient records, newest first.
func (a *App) List(ctx context.Context) error {
	list, err := a.client.ListPatients(ctx)
	if err != nil {
		log.Printf("List request failed: %s", err.Error())
		return err
	}
	printPatients(list)
	return nil
}

// MyUploads prints the records uploaded by the current operator.
func (a *App) MyUploads(ctx context.Context) error {
	list, err := a.client.MyUploads(ctx)
	if err != nil {
		log.Printf("Uploads request failed: %s", err.Error())
		return err
	}
	printPatients(list)
	return nil
}

func printPatients(list []*api.Patient) {
	if len(list) == 0 {
		fmt.Println("No records")
		return
	}
	for _, p := range list {
		fmt.Printf("%s | %s | born %s | age %d | loaded by %s\n",
			p.ID, p.Name, p.DateOfBirth, p.Age, p.LoadedBy)
	}
}
