package testing

import (
	"os"
	"path/filepath"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

// CANBoardBOM is a BOM export with two ambiguous rows
const CANBoardBOM = `Name,Description,Part Number,Designator,Quantity
"10k,4.7k",Resistor 0805,,"R1,R2,R3",3
120R,CAN termination,RC0805FR-07120RL,R4,1
"100n,10u",Capacitor,,"C1,C2",2
MCP2551,CAN transceiver,MCP2551-I/SN,U2,1
STM32F103C8T6,MCU,STM32F103C8T6,U1,1
`

// CANBoardPlacement is a pick-and-place export with a tool preamble
const CANBoardPlacement = `Altium Designer Pick and Place Locations
Units used: mm

Designator,Comment,Layer,Footprint,Center-X(mm),Center-Y(mm),Rotation
R1,10k,TopLayer,R0805,10.0,12.5,0
R2,4.7k,TopLayer,R0805,14.0,12.5,0
R3,10k,TopLayer,R0805,18.0,12.5,0
R4,120R,TopLayer,R0805,22.0,12.5,90
C1,100n,TopLayer,C0402,5.0,5.0,0
C2,10u,TopLayer,C0805,7.0,5.0,0
U1,STM32F103C8T6,TopLayer,LQFP-48,30.0,30.0,0
U2,MCP2551,TopLayer,SOIC-8,40.0,30.0,0
`

// BuildCANBoardTestData returns the CAN board BOM and placement rows in memory
func BuildCANBoardTestData() ([]entities.BOMEntry, []*entities.PlacementEntry) {
	bom := []entities.BOMEntry{
		{Name: "10k,4.7k", Description: "Resistor 0805", Designators: []entities.Designator{"R1", "R2", "R3"}},
		{Name: "120R", Description: "CAN termination", PartNumber: "RC0805FR-07120RL", Designators: []entities.Designator{"R4"}},
		{Name: "100n,10u", Description: "Capacitor", Designators: []entities.Designator{"C1", "C2"}},
		{Name: "MCP2551", Description: "CAN transceiver", PartNumber: "MCP2551-I/SN", Designators: []entities.Designator{"U2"}},
		{Name: "STM32F103C8T6", Description: "MCU", PartNumber: "STM32F103C8T6", Designators: []entities.Designator{"U1"}},
	}

	placements := []*entities.PlacementEntry{
		{Designator: "R1", Value: "10k", Footprint: "R0805"},
		{Designator: "R2", Value: "4.7k", Footprint: "R0805"},
		{Designator: "R3", Value: "10k", Footprint: "R0805"},
		{Designator: "R4", Value: "120R", Footprint: "R0805"},
		{Designator: "C1", Value: "100n", Footprint: "C0402"},
		{Designator: "C2", Value: "10u", Footprint: "C0805"},
		{Designator: "U1", Value: "STM32F103C8T6", Footprint: "LQFP-48"},
		{Designator: "U2", Value: "MCP2551", Footprint: "SOIC-8"},
	}

	return bom, placements
}

// WriteCANBoardProject writes the CAN board exports into dir and returns their paths
func WriteCANBoardProject(dir string) (bomPath, placementPath string, err error) {
	bomPath = filepath.Join(dir, "BOM_CAN_Ver.csv")
	placementPath = filepath.Join(dir, "fab", "Pick Place for PCB1.csv")

	if err := os.MkdirAll(filepath.Dir(placementPath), 0755); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(bomPath, []byte(CANBoardBOM), 0644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(placementPath, []byte(CANBoardPlacement), 0644); err != nil {
		return "", "", err
	}
	return bomPath, placementPath, nil
}
