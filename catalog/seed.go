// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package catalog

import (
	"github.com/poiesic/edusearch/core"
)

// Topic is a curated quick-search shortcut.
type Topic struct {
	Title string
	Query string
}

var suggestions = []string{
	"IoT Projects",
	"Engineering Subjects",
	"Final Year Ideas",
	"Beginner Topics",
}

// Suggestions returns the suggested queries shown next to the search box.
// Each one is run as typed.
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

var topics = []Topic{
	{Title: "Engineering Subjects", Query: "Engineering"},
	{Title: "IoT Sensors", Query: "Sensors"},
	{Title: "Microcontrollers", Query: "Arduino"},
	{Title: "Network Protocols", Query: "Networking"},
	{Title: "AI + IoT", Query: "AI"},
	{Title: "Final Year Ideas", Query: "Final Year"},
}

// Topics returns the quick-search shortcuts in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// SeedResources returns the compiled-in resource records.
func SeedResources() []core.Resource {
	return []core.Resource{
		{
			Id:           1,
			Title:        "Introduction to Arduino UNO",
			Description:  "Learn the basics of the most popular microcontroller for beginners. Explore digital and analog I/O, PWM, and communication interfaces. Ideal for foundation year engineering students.",
			Category:     core.CategoryEducation,
			Type:         core.TypeConcept,
			Level:        core.LevelBeginner,
			Tags:         []string{"Arduino", "Hardware", "Microcontroller", "Beginner", "Basics"},
			Hardware:     []string{"Arduino UNO", "USB Cable"},
			LearningPath: []string{"Digital Electronics", "C++ Programming"},
		},
		{
			Id:           2,
			Title:        "Smart Home Weather Station",
			Description:  "Build a real-time monitoring system using DHT11 and NodeMCU. Send temperature and humidity data to a cloud dashboard. Great final year project idea for IoT enthusiasts.",
			Category:     core.CategoryIoT,
			Type:         core.TypeProject,
			Level:        core.LevelIntermediate,
			Tags:         []string{"IoT", "Sensors", "NodeMCU", "WiFi", "Final Year", "Project Idea"},
			Hardware:     []string{"NodeMCU", "DHT11", "Jumper Wires"},
			LearningPath: []string{"HTTP Protocol", "Cloud Integration"},
		},
		{
			Id:           3,
			Title:        "Understanding MQTT Protocol",
			Description:  "A deep dive into the industry-standard messaging protocol for IoT. Learn about Pub/Sub architecture, Brokers, and QoS levels. Essential for advanced IoT students.",
			Category:     core.CategoryIoT,
			Type:         core.TypeConcept,
			Level:        core.LevelAdvanced,
			Tags:         []string{"MQTT", "Protocols", "Communication", "Advanced"},
			Hardware:     []string{"Raspberry Pi (Optional)", "Computer"},
			LearningPath: []string{"Network Fundamentals", "Pub/Sub Systems"},
		},
		{
			Id:           4,
			Title:        "Basics of Database Management Systems",
			Description:  "Essential academic concepts for Engineering students. Covers SQL, ER Diagrams, Relational Algebra, and Normalization. Core beginner topic for CS majors.",
			Category:     core.CategoryEducation,
			Type:         core.TypeConcept,
			Level:        core.LevelBeginner,
			Tags:         []string{"DBMS", "SQL", "Engineering", "Beginner", "Database"},
			Hardware:     []string{},
			LearningPath: []string{"Data structures", "Computational Logic"},
		},
		{
			Id:           5,
			Title:        "AI-Powered Smart Irrigation",
			Description:  "Using Soil Moisture sensors and ML models to predict water requirements. Automate farming with real-time analytics. Perfect for final year thesis or capstone project.",
			Category:     core.CategoryIoT,
			Type:         core.TypeProject,
			Level:        core.LevelAdvanced,
			Tags:         []string{"AI", "IoT", "Sensors", "Automation", "Final Year", "Thesis", "Project"},
			Hardware:     []string{"ESP32", "Moisture Sensor", "Water Pump"},
			LearningPath: []string{"Machine Learning", "Embedded Systems"},
		},
		{
			Id:           6,
			Title:        "Computer Networking Fundamentals",
			Description:  "Core academic subject covering OSI layers, TCP/IP, Routing, Switching, and Network Security basics. Foundation for network engineering studies.",
			Category:     core.CategoryEducation,
			Type:         core.TypeConcept,
			Level:        core.LevelIntermediate,
			Tags:         []string{"Networking", "OSI Model", "Engineering", "Theory"},
			Hardware:     []string{},
			LearningPath: []string{"Data Communication", "Hardware Protocols"},
		},
	}
}

// Default returns a corpus of the compiled-in records.
func Default() *Corpus {
	c, err := NewCorpus(SeedResources()...)
	if err != nil {
		panic("catalog: invalid seed data: " + err.Error())
	}
	return c
}
